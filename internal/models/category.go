package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"smarthome-store/internal/pricing"
)

// Category representa una categoría administrable del back office
type Category struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Slug         pricing.Category   `json:"slug" bson:"slug" binding:"required"`
	Name         string             `json:"name" bson:"name" binding:"required"`
	Description  string             `json:"description,omitempty" bson:"description,omitempty"`
	DisplayOrder int                `json:"display_order" bson:"display_order"`
	IsActive     bool               `json:"is_active" bson:"is_active"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// CategoryUpdate representa los campos actualizables de una categoría
type CategoryUpdate struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	DisplayOrder *int    `json:"display_order,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

// PriceListEntry es una fila de la lista de precios que exporta el
// back office: una por producto o variante
type PriceListEntry struct {
	SKU           string `json:"sku"`
	Name          string `json:"name"`
	Variant       string `json:"variant,omitempty"`
	Price         int64  `json:"price"`
	DiscountPrice int64  `json:"discount_price,omitempty"`
	Stock         int64  `json:"stock"`
}
