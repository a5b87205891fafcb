package handler

import (
	"github.com/Shrey0428/ExoticBill/internal/domain/billing"
	"github.com/Shrey0428/ExoticBill/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// CatalogHandler exposes the active rate card so the till can render its menus
type CatalogHandler struct {
	card *billing.RateCard
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(card *billing.RateCard) *CatalogHandler {
	return &CatalogHandler{card: card}
}

// Get returns the rate card
func (h *CatalogHandler) Get(c *gin.Context) {
	response.OK(c, "Catalog retrieved successfully", h.card)
}
