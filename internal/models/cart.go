package models

import (
	"time"

	"smarthome-store/internal/pricing"
)

// CartLine es una línea persistida del carrito: el CartPayload del
// motor más el identificador asignado al insertar
type CartLine struct {
	LineID           string    `json:"line_id" bson:"line_id"`
	pricing.CartLine `bson:",inline"`
	AddedAt          time.Time `json:"added_at" bson:"added_at"`
}

// Cart agrupa las líneas de un comprador
type Cart struct {
	ID        string     `json:"cart_id" bson:"_id"`
	Lines     []CartLine `json:"lines" bson:"lines"`
	Total     int64      `json:"total" bson:"total"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}

// Order es el documento de compra directa ("buy now"): se crea una vez
// y pasa al lado de fulfillment
type Order struct {
	ID        string     `json:"order_id" bson:"_id"`
	Lines     []CartLine `json:"lines" bson:"lines"`
	Total     int64      `json:"total" bson:"total"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
}
