package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"go-bar-pos/internal/pos"
)

// --- GET: the current order with totals ---
func (a *API) GetOrder(c *gin.Context) {
	discount := discountFromQuery(c)
	cart := a.Session.Cart()
	totals := a.Session.Totals(discount)
	c.JSON(http.StatusOK, gin.H{"cart": cart, "totals": totals})
}

type AddItemRequest struct {
	InventoryID uint `json:"inventory_id" binding:"required"`
}

// --- POST: add one unit of a menu item ---
func (a *API) AddToOrder(c *gin.Context) {
	var input AddItemRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	line, err := a.Session.AddItem(c.Request.Context(), input.InventoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, line)
}

type CustomItemRequest struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// --- POST: add an ad-hoc priced item ---
func (a *API) AddCustomToOrder(c *gin.Context) {
	var input CustomItemRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	line, err := a.Session.AddCustomItem(input.Name, input.Price)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, line)
}

type NoteRequest struct {
	Note string `json:"note"`
}

// --- PUT: attach a note to a line ---
func (a *API) NoteLine(c *gin.Context) {
	var input NoteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := a.Session.AttachNote(c.Param("lineId"), input.Note); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a.Session.Cart())
}

// --- DELETE: remove one unit of an unsaved line ---
func (a *API) DecrementLine(c *gin.Context) {
	if err := a.Session.Decrement(c.Param("lineId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a.Session.Cart())
}

// --- POST: start a fresh order ---
func (a *API) NewOrder(c *gin.Context) {
	a.Session.NewOrder()
	c.JSON(http.StatusOK, gin.H{"message": "New order started"})
}

type SaveTabRequest struct {
	CustomerName string `json:"customer_name"`
}

// --- POST: save the order as an open tab ---
func (a *API) SaveTab(c *gin.Context) {
	var input SaveTabRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	tab, err := a.Session.SaveTab(c.Request.Context(), input.CustomerName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tab)
}

// --- GET: tabs available to reopen ---
func (a *API) ListTabs(c *gin.Context) {
	tabs, err := a.Session.OpenTabs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tabs)
}

// --- POST: reopen a tab into the terminal ---
func (a *API) LoadTab(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tab ID"})
		return
	}
	cart, err := a.Session.LoadTab(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

type VoidRequest struct {
	Reason string `json:"reason" binding:"required"`
	Pin    string `json:"pin"`
}

// --- POST: void one saved unit of a line ---
func (a *API) VoidLine(c *gin.Context) {
	var input VoidRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	err := a.Session.Void(c.Request.Context(), c.Param("lineId"), input.Reason, input.Pin, employeeName(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a.Session.Cart())
}

// --- POST: pay and finalize the sale ---
func (a *API) Checkout(c *gin.Context) {
	var req pos.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	req.Employee = employeeName(c)
	receipt, err := a.Session.Pay(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

func discountFromQuery(c *gin.Context) *pos.Discount {
	value := c.Query("discount_value")
	if value == "" {
		return nil
	}
	v, err := decimal.NewFromString(value)
	if err != nil {
		return nil
	}
	t := pos.DiscountType(c.DefaultQuery("discount_type", string(pos.DiscountPercent)))
	return &pos.Discount{Type: t, Value: v}
}
