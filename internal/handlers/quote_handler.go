package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"smarthome-store/internal/models"
	"smarthome-store/internal/pricing"
)

// ProductSource es la fuente de solo lectura de productos; puede
// devolver stock desactualizado y el motor no lo revalida.
type ProductSource interface {
	FindByID(ctx context.Context, id string) (*models.Product, error)
}

type QuoteHandler struct {
	products ProductSource
	composer *pricing.Composer
}

func NewQuoteHandler(products ProductSource, composer *pricing.Composer) *QuoteHandler {
	return &QuoteHandler{
		products: products,
		composer: composer,
	}
}

// QuoteRequest es el cuerpo de cotización y de las acciones de carrito
type QuoteRequest struct {
	ProductID     string           `json:"product_id" binding:"required"`
	Configuration ConfigurationDTO `json:"configuration" binding:"required"`
}

// resolve carga el producto y materializa la configuración; responde
// el error HTTP que corresponda y devuelve ok=false si algo falla.
func (h *QuoteHandler) resolve(c *gin.Context, req QuoteRequest) (pricing.ProductInfo, pricing.Configuration, bool) {
	product, err := h.products.FindByID(c.Request.Context(), req.ProductID)
	if err != nil {
		if err.Error() == "product not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get product"})
		}
		return pricing.ProductInfo{}, nil, false
	}

	cfg, err := req.Configuration.ToConfiguration()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return pricing.ProductInfo{}, nil, false
	}
	return product.ToPricing(), cfg, true
}

// Quote cotiza una configuración sin persistir nada: validación,
// desglose y decoración de ahorro para la UI
func (h *QuoteHandler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	info, cfg, ok := h.resolve(c, req)
	if !ok {
		return
	}

	norm := pricing.Normalize(cfg)
	validation := pricing.Validate(info, norm)
	if !validation.Purchasable {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"validation": validation})
		return
	}

	quote, err := h.composer.Compose(info, norm)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"validation": validation,
		"breakdown":  quote.Breakdown,
		"lines":      quote.Lines,
		// decoración solo para mostrar: nunca entra al total cobrado
		"decoration": pricing.Decorate(quote.Breakdown.Total),
	})
}
