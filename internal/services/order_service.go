// internal/services/order_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eshopx/eshop-backend/internal/database"
	"github.com/eshopx/eshop-backend/internal/models"
)

type OrderService struct {
	db       *database.DB
	products *ProductService
}

type OrderItemRequest struct {
	Quantity int    `json:"quantity" validate:"required,gt=0"`
	Product  string `json:"product" validate:"required"`
}

type CreateOrderRequest struct {
	OrderItems       []OrderItemRequest `json:"orderItems" validate:"required,min=1,dive"`
	ShippingAddress1 string             `json:"shippingAddress1" validate:"required"`
	ShippingAddress2 string             `json:"shippingAddress2"`
	City             string             `json:"city"`
	Zip              string             `json:"zip"`
	Country          string             `json:"country"`
	Phone            string             `json:"phone"`
	Status           string             `json:"status"`
	User             string             `json:"user" validate:"required"`
}

type UpdateOrderRequest struct {
	Status string `json:"status" validate:"required"`
}

func NewOrderService(db *database.DB, products *ProductService) *OrderService {
	return &OrderService{db: db, products: products}
}

// List returns all orders newest first, with the user's name resolved.
func (s *OrderService) List(ctx context.Context) ([]models.OrderSummary, error) {
	opts := options.Find().SetSort(bson.D{{Key: "dateCreated", Value: -1}})
	cursor, err := s.db.Orders().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	summaries := make([]models.OrderSummary, 0, len(orders))
	for _, order := range orders {
		summaries = append(summaries, models.OrderSummary{
			Order: order,
			User:  s.userSummary(ctx, order.User),
		})
	}
	return summaries, nil
}

// Get returns one order with its user and every item joined with the
// item's product and the product's category.
func (s *OrderService) Get(ctx context.Context, id string) (*models.OrderDetail, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var order models.Order
	if err := s.db.Orders().FindOne(ctx, bson.M{"_id": oid}).Decode(&order); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	detail, err := s.populate(ctx, order)
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// Create runs the multi-step order flow: persist each item, re-read it
// joined with its product's price, derive the total, then persist the
// order. Items created before a failing step are not rolled back.
func (s *OrderService) Create(ctx context.Context, req *CreateOrderRequest) (*models.Order, error) {
	userID, err := primitive.ObjectIDFromHex(req.User)
	if err != nil {
		return nil, ErrInvalidID
	}

	itemIDs := make([]primitive.ObjectID, 0, len(req.OrderItems))
	for _, item := range req.OrderItems {
		productID, err := primitive.ObjectIDFromHex(item.Product)
		if err != nil {
			return nil, ErrInvalidID
		}

		result, err := s.db.OrderItems().InsertOne(ctx, &models.OrderItem{
			Quantity: item.Quantity,
			Product:  productID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}
		itemIDs = append(itemIDs, result.InsertedID.(primitive.ObjectID))
	}

	lineTotals := make([]float64, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		var item models.OrderItem
		if err := s.db.OrderItems().FindOne(ctx, bson.M{"_id": itemID}).Decode(&item); err != nil {
			return nil, fmt.Errorf("failed to fetch order item: %w", err)
		}

		var product models.Product
		if err := s.db.Products().FindOne(ctx, bson.M{"_id": item.Product}).Decode(&product); err != nil {
			return nil, fmt.Errorf("failed to fetch product for order item: %w", err)
		}
		lineTotals = append(lineTotals, product.Price*float64(item.Quantity))
	}

	status := req.Status
	if status == "" {
		status = models.OrderStatusPending
	}

	order := &models.Order{
		OrderItems:       itemIDs,
		ShippingAddress1: req.ShippingAddress1,
		ShippingAddress2: req.ShippingAddress2,
		City:             req.City,
		Zip:              req.Zip,
		Country:          req.Country,
		Phone:            req.Phone,
		Status:           status,
		TotalPrice:       sumLineTotals(lineTotals),
		User:             userID,
		DateCreated:      time.Now(),
	}

	result, err := s.db.Orders().InsertOne(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	order.ID = result.InsertedID.(primitive.ObjectID)
	return order, nil
}

// UpdateStatus replaces the order status and returns the new document.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, req *UpdateOrderRequest) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	update := bson.M{"$set": bson.M{"status": req.Status}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	if err := s.db.Orders().FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&order); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	return &order, nil
}

// Delete removes the order, then best-effort deletes each referenced
// item. A failure mid-cascade leaves the remaining items in place.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	var order models.Order
	if err := s.db.Orders().FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&order); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}

	for _, itemID := range order.OrderItems {
		if _, err := s.db.OrderItems().DeleteOne(ctx, bson.M{"_id": itemID}); err != nil {
			logrus.WithError(err).WithField("order_item", itemID.Hex()).
				Warn("Failed to delete order item during cascade")
		}
	}
	return nil
}

// TotalSales sums totalPrice across all orders.
func (s *OrderService) TotalSales(ctx context.Context) (float64, bool, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalsales", Value: bson.D{{Key: "$sum", Value: "$totalPrice"}}},
		}}},
	}

	cursor, err := s.db.Orders().Aggregate(ctx, pipeline)
	if err != nil {
		return 0, false, fmt.Errorf("failed to aggregate total sales: %w", err)
	}

	var results []struct {
		TotalSales float64 `bson:"totalsales"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, false, fmt.Errorf("failed to decode total sales: %w", err)
	}
	if len(results) == 0 {
		return 0, false, nil
	}
	return results[0].TotalSales, true, nil
}

func (s *OrderService) Count(ctx context.Context) (int64, error) {
	count, err := s.db.Orders().CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

// ListByUser returns a user's orders newest first, fully populated.
func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]models.OrderDetail, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidID
	}

	opts := options.Find().SetSort(bson.D{{Key: "dateCreated", Value: -1}})
	cursor, err := s.db.Orders().Find(ctx, bson.M{"user": oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list user orders: %w", err)
	}

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	details := make([]models.OrderDetail, 0, len(orders))
	for _, order := range orders {
		detail, err := s.populate(ctx, order)
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

func (s *OrderService) populate(ctx context.Context, order models.Order) (*models.OrderDetail, error) {
	items := make([]models.OrderItemDetail, 0, len(order.OrderItems))
	for _, itemID := range order.OrderItems {
		var item models.OrderItem
		if err := s.db.OrderItems().FindOne(ctx, bson.M{"_id": itemID}).Decode(&item); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				continue // orphaned reference
			}
			return nil, fmt.Errorf("failed to fetch order item: %w", err)
		}

		itemDetail := models.OrderItemDetail{OrderItem: item}
		product, err := s.products.Get(ctx, item.Product.Hex())
		if err == nil {
			itemDetail.Product = product
		} else if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrInvalidID) {
			return nil, err
		}
		items = append(items, itemDetail)
	}

	return &models.OrderDetail{
		Order:      order,
		User:       s.userSummary(ctx, order.User),
		OrderItems: items,
	}, nil
}

func (s *OrderService) userSummary(ctx context.Context, id primitive.ObjectID) *models.UserSummary {
	var user models.UserSummary
	if err := s.db.Users().FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil
	}
	return &user
}

// sumLineTotals is the derivation step of order creation: the order's
// total is the sum of price x quantity over its items, fixed at
// creation time.
func sumLineTotals(lineTotals []float64) float64 {
	var total float64
	for _, t := range lineTotals {
		total += t
	}
	return total
}
