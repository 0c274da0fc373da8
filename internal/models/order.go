// internal/models/order.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const OrderStatusPending = "Pending"

// OrderItem lives in its own collection and is owned by exactly one order.
type OrderItem struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Product  primitive.ObjectID `bson:"product" json:"product"`
}

type Order struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	OrderItems       []primitive.ObjectID `bson:"orderItems" json:"orderItems"`
	ShippingAddress1 string               `bson:"shippingAddress1" json:"shippingAddress1"`
	ShippingAddress2 string               `bson:"shippingAddress2" json:"shippingAddress2"`
	City             string               `bson:"city" json:"city"`
	Zip              string               `bson:"zip" json:"zip"`
	Country          string               `bson:"country" json:"country"`
	Phone            string               `bson:"phone" json:"phone"`
	Status           string               `bson:"status" json:"status"`
	TotalPrice       float64              `bson:"totalPrice" json:"totalPrice"`
	User             primitive.ObjectID   `bson:"user" json:"user"`
	DateCreated      time.Time            `bson:"dateCreated" json:"dateCreated"`
}

// OrderSummary is an order with only the user reference resolved,
// as returned by the order list endpoint.
type OrderSummary struct {
	Order
	User *UserSummary `json:"user"`
}

// OrderItemDetail is an order item with its product (and the product's
// category) resolved.
type OrderItemDetail struct {
	OrderItem
	Product *ProductDetail `json:"product"`
}

// OrderDetail is a fully populated order: user plus every item joined
// with its product and category.
type OrderDetail struct {
	Order
	User       *UserSummary      `json:"user"`
	OrderItems []OrderItemDetail `json:"orderItems"`
}
