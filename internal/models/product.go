package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"smarthome-store/internal/pricing"
)

// Product representa un producto del catálogo smart-home
type Product struct {
	ID                 primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SKU                string             `json:"sku" bson:"sku" binding:"required"`
	Name               string             `json:"name" bson:"name" binding:"required"`
	Description        string             `json:"description,omitempty" bson:"description,omitempty"`
	Category           pricing.Category   `json:"category" bson:"category" binding:"required"`
	UnitPrice          int64              `json:"unit_price" bson:"unit_price" binding:"required"`
	Currency           string             `json:"currency" bson:"currency"`
	Stock              int64              `json:"stock" bson:"stock"`
	EngravingAvailable bool               `json:"engraving_available" bson:"engraving_available"`
	EngravingPrice     int64              `json:"engraving_price,omitempty" bson:"engraving_price,omitempty"`
	Variants           []Variant          `json:"variants,omitempty" bson:"variants,omitempty"`
	Accessories        []Accessory        `json:"accessories,omitempty" bson:"accessories,omitempty"`
	Images             []string           `json:"images,omitempty" bson:"images,omitempty"`
	IsActive           bool               `json:"is_active" bson:"is_active"`
	IsDeleted          bool               `json:"-" bson:"is_deleted"`
	CreatedAt          time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at" bson:"updated_at"`
}

// Variant es una variante con precio propio (tamaños de iluminación)
type Variant struct {
	Name          string `json:"name" bson:"name"`
	Price         int64  `json:"price" bson:"price"`
	DiscountPrice int64  `json:"discount_price,omitempty" bson:"discount_price,omitempty"`
	Stock         int64  `json:"stock" bson:"stock"`
	WifiUpcharge  int64  `json:"wifi_upcharge,omitempty" bson:"wifi_upcharge,omitempty"`
}

// Accessory es un ítem individual de un bundle (cámara, sensor, sirena)
type Accessory struct {
	Name  string `json:"name" bson:"name"`
	Price int64  `json:"price" bson:"price"`
}

// ProductUpdate representa los campos actualizables de un producto
type ProductUpdate struct {
	Name               *string           `json:"name,omitempty"`
	Description        *string           `json:"description,omitempty"`
	Category           *pricing.Category `json:"category,omitempty"`
	UnitPrice          *int64            `json:"unit_price,omitempty"`
	Currency           *string           `json:"currency,omitempty"`
	Stock              *int64            `json:"stock,omitempty"`
	EngravingAvailable *bool             `json:"engraving_available,omitempty"`
	EngravingPrice     *int64            `json:"engraving_price,omitempty"`
	Variants           []Variant         `json:"variants,omitempty"`
	Accessories        []Accessory       `json:"accessories,omitempty"`
	Images             []string          `json:"images,omitempty"`
	IsActive           *bool             `json:"is_active,omitempty"`
}

// ToPricing construye la vista de solo lectura que consume el motor de
// precios
func (p *Product) ToPricing() pricing.ProductInfo {
	info := pricing.ProductInfo{
		ID:                 p.ID.Hex(),
		Name:               p.Name,
		Category:           p.Category,
		UnitPrice:          p.UnitPrice,
		Stock:              p.Stock,
		EngravingAvailable: p.EngravingAvailable,
		EngravingPrice:     p.EngravingPrice,
	}
	for _, v := range p.Variants {
		info.Variants = append(info.Variants, pricing.Variant{
			Name:          v.Name,
			Price:         v.Price,
			DiscountPrice: v.DiscountPrice,
			Stock:         v.Stock,
			WifiUpcharge:  v.WifiUpcharge,
		})
	}
	for _, a := range p.Accessories {
		info.Accessories = append(info.Accessories, pricing.Accessory{
			Name:  a.Name,
			Price: a.Price,
		})
	}
	return info
}
