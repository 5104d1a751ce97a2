package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"smarthome-store/internal/models"
	"smarthome-store/internal/pricing"
)

// CartStore es el colaborador externo que persiste líneas ya
// valorizadas. Si rechaza, la configuración del comprador queda
// intacta del lado del cliente y puede reintentar sin recargar datos.
type CartStore interface {
	AddLines(ctx context.Context, cartID string, lines []pricing.CartLine) (*models.Cart, error)
	FindByID(ctx context.Context, cartID string) (*models.Cart, error)
	CreateOrder(ctx context.Context, lines []pricing.CartLine) (*models.Order, error)
}

type CartHandler struct {
	products ProductSource
	carts    CartStore
	composer *pricing.Composer
}

func NewCartHandler(products ProductSource, carts CartStore, composer *pricing.Composer) *CartHandler {
	return &CartHandler{
		products: products,
		carts:    carts,
		composer: composer,
	}
}

// AddToCart compone la configuración y agrega las líneas al carrito.
// Para PDLC usa la vía agregada (área total + transformador +
// instalación).
func (h *CartHandler) AddToCart(c *gin.Context) {
	cartID := c.Param("cartId")
	if cartID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing cart id"})
		return
	}

	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	qh := QuoteHandler{products: h.products, composer: h.composer}
	info, cfg, ok := qh.resolve(c, req)
	if !ok {
		return
	}

	quote, err := h.composer.Compose(info, cfg)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	cart, err := h.carts.AddLines(c.Request.Context(), cartID, quote.Lines)
	if err != nil {
		// sin reintento automático: el comprador vuelve a disparar la
		// acción con la misma configuración
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to add to cart"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"cart":      cart,
		"breakdown": quote.Breakdown,
	})
}

// BuyNow crea una orden directa. Solo el film PDLC usa esta vía: una
// línea por par de dimensiones, sin transformador ni instalación.
func (h *CartHandler) BuyNow(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	qh := QuoteHandler{products: h.products, composer: h.composer}
	info, cfg, ok := qh.resolve(c, req)
	if !ok {
		return
	}

	pdlc, isPDLC := cfg.(pricing.PDLCConfig)
	if !isPDLC {
		c.JSON(http.StatusBadRequest, gin.H{"error": "buy now is only available for pdlc film"})
		return
	}

	quote, err := h.composer.ComposePDLCPerItem(info, pdlc)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	order, err := h.carts.CreateOrder(c.Request.Context(), quote.Lines)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to place order"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order":     order,
		"breakdown": quote.Breakdown,
	})
}

// GetCart devuelve el carrito con sus líneas
func (h *CartHandler) GetCart(c *gin.Context) {
	cartID := c.Param("cartId")
	if cartID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing cart id"})
		return
	}

	cart, err := h.carts.FindByID(c.Request.Context(), cartID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get cart"})
		return
	}

	c.JSON(http.StatusOK, cart)
}
