package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"smarthome-store/internal/models"
	"smarthome-store/internal/pricing"
)

// CartRepository persiste carritos y órdenes de compra directa. Es el
// colaborador externo del motor de precios: recibe CartLines ya
// valorizadas y no recalcula nada.
type CartRepository struct {
	carts  *mongo.Collection
	orders *mongo.Collection
}

func NewCartRepository(carts, orders *mongo.Collection) *CartRepository {
	return &CartRepository{
		carts:  carts,
		orders: orders,
	}
}

// assignLineIDs asigna identificadores a las líneas recién compuestas
func assignLineIDs(lines []pricing.CartLine) []models.CartLine {
	now := time.Now()
	out := make([]models.CartLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, models.CartLine{
			LineID:   uuid.NewString(),
			CartLine: l,
			AddedAt:  now,
		})
	}
	return out
}

// AddLines agrega líneas al carrito, creándolo si no existe. Un único
// upsert: si falla no queda nada aplicado a medias.
func (r *CartRepository) AddLines(ctx context.Context, cartID string, lines []pricing.CartLine) (*models.Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	stamped := assignLineIDs(lines)
	delta := int64(0)
	for _, l := range stamped {
		delta += l.TotalPrice
	}

	filter := bson.M{"_id": cartID}
	update := bson.M{
		"$push": bson.M{"lines": bson.M{"$each": stamped}},
		"$inc":  bson.M{"total": delta},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var cart models.Cart
	if err := r.carts.FindOneAndUpdate(ctx, filter, update, opts).Decode(&cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// FindByID obtiene un carrito por ID
func (r *CartRepository) FindByID(ctx context.Context, cartID string) (*models.Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var cart models.Cart
	if err := r.carts.FindOne(ctx, bson.M{"_id": cartID}).Decode(&cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// CreateOrder crea el documento de compra directa a partir de las
// líneas compuestas
func (r *CartRepository) CreateOrder(ctx context.Context, lines []pricing.CartLine) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	stamped := assignLineIDs(lines)
	total := int64(0)
	for _, l := range stamped {
		total += l.TotalPrice
	}

	order := &models.Order{
		ID:        uuid.NewString(),
		Lines:     stamped,
		Total:     total,
		CreatedAt: time.Now(),
	}

	if _, err := r.orders.InsertOne(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}
