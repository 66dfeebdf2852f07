package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-bar-pos/internal/pos"
)

// API bundles the terminal session and the stores the handlers touch
// directly. Everything order-related goes through the session so the
// busy flag can gate double submissions.
type API struct {
	Session *pos.Session
	Catalog pos.Catalog
	Users   pos.UserStore
	Sales   pos.SalesLedger
}

func NewAPI(session *pos.Session, catalog pos.Catalog, users pos.UserStore, sales pos.SalesLedger) *API {
	return &API{Session: session, Catalog: catalog, Users: users, Sales: sales}
}

// respondError maps the engine's error taxonomy onto HTTP statuses.
// Every kind is recoverable on the client side.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch pos.KindOf(err) {
	case pos.KindValidation, pos.KindInsufficientFunds:
		status = http.StatusBadRequest
	case pos.KindConflict, pos.KindStockUnavailable:
		status = http.StatusConflict
	case pos.KindNetwork:
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": err.Error(), "kind": pos.KindOf(err).String()})
}

func employeeName(c *gin.Context) string {
	if name, ok := c.Get("username"); ok {
		if s, ok := name.(string); ok {
			return s
		}
	}
	return ""
}
