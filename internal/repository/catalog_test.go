package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"go-bar-pos/internal/database"
	"go-bar-pos/internal/models"
	"go-bar-pos/internal/pos"
	"go-bar-pos/internal/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedTracked(t *testing.T, db *gorm.DB, stock int) models.InventoryItem {
	t.Helper()
	s := stock
	item := models.InventoryItem{
		Name:        "Bud Light",
		Price:       decimal.RequireFromString("4.00"),
		Category:    "beer",
		StockCount:  &s,
		IsAvailable: stock > 0,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	return item
}

func TestDeductIsConditionalAndClamps(t *testing.T) {
	db := setupTestDB(t)
	catalog := repository.NewCatalog(db)
	ctx := context.Background()

	item := seedTracked(t, db, 5)

	if err := catalog.Deduct(ctx, item.ID, 3); err != nil {
		t.Fatalf("deduct: %v", err)
	}
	got, _ := catalog.Get(ctx, item.ID)
	if *got.StockCount != 2 || !got.IsAvailable {
		t.Fatalf("expected 2 available, got %+v", got)
	}

	// Asking for more than remains clamps to zero and flips availability.
	if err := catalog.Deduct(ctx, item.ID, 10); err != nil {
		t.Fatalf("deduct past zero: %v", err)
	}
	got, _ = catalog.Get(ctx, item.ID)
	if *got.StockCount != 0 || got.IsAvailable {
		t.Fatalf("expected clamped 0 unavailable, got %+v", got)
	}

	// Stock never goes negative no matter the sequence.
	if err := catalog.Deduct(ctx, item.ID, 1); err != nil {
		t.Fatalf("deduct at zero: %v", err)
	}
	got, _ = catalog.Get(ctx, item.ID)
	if *got.StockCount != 0 {
		t.Fatalf("stock must stay at zero, got %d", *got.StockCount)
	}
}

func TestRestoreReopensAvailability(t *testing.T) {
	db := setupTestDB(t)
	catalog := repository.NewCatalog(db)
	ctx := context.Background()

	item := seedTracked(t, db, 1)
	if err := catalog.Deduct(ctx, item.ID, 1); err != nil {
		t.Fatalf("deduct: %v", err)
	}
	if err := catalog.Restore(ctx, item.ID, 1); err != nil {
		t.Fatalf("restore: %v", err)
	}
	got, _ := catalog.Get(ctx, item.ID)
	if *got.StockCount != 1 || !got.IsAvailable {
		t.Fatalf("restore must bring the item back, got %+v", got)
	}
}

func TestDeductUntrackedIsNoop(t *testing.T) {
	db := setupTestDB(t)
	catalog := repository.NewCatalog(db)
	ctx := context.Background()

	item := models.InventoryItem{Name: "Well Vodka", Price: decimal.RequireFromString("3.50"), Category: "liquor", IsAvailable: true}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := catalog.Deduct(ctx, item.ID, 4); err != nil {
		t.Fatalf("deduct: %v", err)
	}
	got, _ := catalog.Get(ctx, item.ID)
	if got.StockCount != nil || !got.IsAvailable {
		t.Fatalf("untracked item must be untouched, got %+v", got)
	}
}

func TestDeleteReferencedByActiveTabRowConflicts(t *testing.T) {
	db := setupTestDB(t)
	catalog := repository.NewCatalog(db)
	tabs := repository.NewTabStore(db)
	ctx := context.Background()

	item := seedTracked(t, db, 5)
	tab, err := tabs.Create(ctx, "Morgan")
	if err != nil {
		t.Fatalf("create tab: %v", err)
	}
	id := item.ID
	rows := []models.TabItem{{
		TabID:       tab.ID,
		InventoryID: &id,
		Name:        item.Name,
		Price:       item.Price,
		Quantity:    1,
		Status:      models.RowActive,
	}}
	if err := tabs.InsertItemRows(ctx, rows); err != nil {
		t.Fatalf("insert rows: %v", err)
	}

	if err := catalog.Delete(ctx, item.ID); !pos.IsKind(err, pos.KindConflict) {
		t.Fatalf("delete of a referenced item must conflict, got %v", err)
	}

	// Once the row is voided the delete goes through.
	if err := tabs.MarkVoided(ctx, rows[0].ID, "entry_error"); err != nil {
		t.Fatalf("mark voided: %v", err)
	}
	if err := catalog.Delete(ctx, item.ID); err != nil {
		t.Fatalf("delete after void: %v", err)
	}
}

func TestMarkVoidedTwiceConflicts(t *testing.T) {
	db := setupTestDB(t)
	tabs := repository.NewTabStore(db)
	ctx := context.Background()

	tab, _ := tabs.Create(ctx, "Alex")
	rows := []models.TabItem{{
		TabID:    tab.ID,
		Name:     "Birthday Special",
		Price:    decimal.RequireFromString("7.50"),
		Quantity: 1,
		Status:   models.RowActive,
	}}
	if err := tabs.InsertItemRows(ctx, rows); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := tabs.MarkVoided(ctx, rows[0].ID, "waste"); err != nil {
		t.Fatalf("void: %v", err)
	}
	if err := tabs.MarkVoided(ctx, rows[0].ID, "waste"); !pos.IsKind(err, pos.KindConflict) {
		t.Fatalf("second void must conflict, got %v", err)
	}
}
