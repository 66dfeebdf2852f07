package handlers

import (
	"net/http"
	"strconv"

	"go-bar-pos/internal/models"

	"github.com/gin-gonic/gin"
)

// --- GET: the menu with cart-aware availability ---
func (a *API) GetMenu(c *gin.Context) {
	entries, err := a.Session.Menu(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// --- POST: add a new menu item (admin) ---
func (a *API) AddMenuItem(c *gin.Context) {
	var item models.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	// Tracked items with stock start available.
	if item.StockCount != nil {
		item.IsAvailable = *item.StockCount > 0
	}
	if err := a.Catalog.Create(c.Request.Context(), &item); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// --- PUT: update a menu item (admin) ---
func (a *API) UpdateMenuItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	item, err := a.Catalog.Get(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	var input models.InventoryItem
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	item.Name = input.Name
	item.Price = input.Price
	item.Category = input.Category
	item.Tier = input.Tier
	item.StockCount = input.StockCount
	if item.StockCount != nil {
		item.IsAvailable = *item.StockCount > 0
	} else {
		item.IsAvailable = input.IsAvailable
	}

	if err := a.Catalog.Update(c.Request.Context(), item); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// --- DELETE: remove a menu item (admin) ---
// Fails with 409 when the item still sits on an open tab.
func (a *API) DeleteMenuItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}
	if err := a.Catalog.Delete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}

// --- GET: sales history (admin) ---
func (a *API) ListSales(c *gin.Context) {
	sales, err := a.Sales.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

// --- DELETE: wipe sales history (admin) ---
func (a *API) ClearSales(c *gin.Context) {
	if err := a.Sales.ClearAll(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sales history cleared"})
}
