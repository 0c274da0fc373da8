// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eshopx/eshop-backend/internal/database"
	"github.com/eshopx/eshop-backend/internal/models"
)

type ProductService struct {
	db         *database.DB
	categories *CategoryService
}

type ProductRequest struct {
	Name            string  `validate:"required"`
	Description     string  `validate:"required"`
	RichDescription string
	Brand           string
	Price           float64 `validate:"gte=0"`
	Category        string  `validate:"required"`
	CountInStock    int     `validate:"gte=0"`
	Rating          float64
	NumReviews      int
	IsFeatured      bool
}

func NewProductService(db *database.DB, categories *CategoryService) *ProductService {
	return &ProductService{db: db, categories: categories}
}

// List returns all products, optionally filtered by category ids, each
// with its category resolved.
func (s *ProductService) List(ctx context.Context, categoryIDs []string) ([]models.ProductDetail, error) {
	filter := bson.M{}
	if len(categoryIDs) > 0 {
		oids := make([]primitive.ObjectID, 0, len(categoryIDs))
		for _, id := range categoryIDs {
			oid, err := primitive.ObjectIDFromHex(id)
			if err != nil {
				return nil, ErrInvalidID
			}
			oids = append(oids, oid)
		}
		filter["category"] = bson.M{"$in": oids}
	}

	cursor, err := s.db.Products().Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return s.populate(ctx, products)
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.ProductDetail, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var product models.Product
	if err := s.db.Products().FindOne(ctx, bson.M{"_id": oid}).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	detail, err := s.populate(ctx, []models.Product{product})
	if err != nil {
		return nil, err
	}
	return &detail[0], nil
}

// Create validates the category reference before persisting anything.
func (s *ProductService) Create(ctx context.Context, req *ProductRequest, imageURL string) (*models.Product, error) {
	categoryID, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:            req.Name,
		Description:     req.Description,
		RichDescription: req.RichDescription,
		Image:           imageURL,
		Brand:           req.Brand,
		Price:           req.Price,
		Category:        categoryID,
		CountInStock:    req.CountInStock,
		Rating:          req.Rating,
		NumReviews:      req.NumReviews,
		IsFeatured:      req.IsFeatured,
		DateCreated:     time.Now(),
	}

	result, err := s.db.Products().InsertOne(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	product.ID = result.InsertedID.(primitive.ObjectID)
	return product, nil
}

// Update replaces the mutable attributes. An empty imageURL keeps the
// stored image.
func (s *ProductService) Update(ctx context.Context, id string, req *ProductRequest, imageURL string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	categoryID, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	var existing models.Product
	if err := s.db.Products().FindOne(ctx, bson.M{"_id": oid}).Decode(&existing); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	if imageURL == "" {
		imageURL = existing.Image
	}

	update := bson.M{"$set": bson.M{
		"name":            req.Name,
		"description":     req.Description,
		"richDescription": req.RichDescription,
		"image":           imageURL,
		"brand":           req.Brand,
		"price":           req.Price,
		"category":        categoryID,
		"countInStock":    req.CountInStock,
		"rating":          req.Rating,
		"numReviews":      req.NumReviews,
		"isFeatured":      req.IsFeatured,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product models.Product
	if err := s.db.Products().FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &product, nil
}

// UpdateGallery replaces the gallery image URLs on a product.
func (s *ProductService) UpdateGallery(ctx context.Context, id string, imageURLs []string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	update := bson.M{"$set": bson.M{"images": imageURLs}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product models.Product
	if err := s.db.Products().FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update gallery: %w", err)
	}
	return &product, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := s.db.Products().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ProductService) Count(ctx context.Context) (int64, error) {
	count, err := s.db.Products().CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// Featured returns featured products, capped at limit when limit > 0.
func (s *ProductService) Featured(ctx context.Context, limit int64) ([]models.Product, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := s.db.Products().Find(ctx, bson.M{"isFeatured": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list featured products: %w", err)
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

func (s *ProductService) resolveCategory(ctx context.Context, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidCategory
	}
	exists, err := s.categories.Exists(ctx, oid)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if !exists {
		return primitive.NilObjectID, ErrInvalidCategory
	}
	return oid, nil
}

func (s *ProductService) populate(ctx context.Context, products []models.Product) ([]models.ProductDetail, error) {
	details := make([]models.ProductDetail, 0, len(products))
	for _, p := range products {
		detail := models.ProductDetail{Product: p}
		category, err := s.categories.Get(ctx, p.Category.Hex())
		if err == nil {
			detail.Category = category
		} else if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrInvalidID) {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}
