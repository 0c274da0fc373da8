// internal/services/category_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eshopx/eshop-backend/internal/database"
	"github.com/eshopx/eshop-backend/internal/models"
)

type CategoryService struct {
	db *database.DB
}

type CategoryRequest struct {
	Name  string `json:"name" validate:"required"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

func NewCategoryService(db *database.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	cursor, err := s.db.Categories().Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var category models.Category
	if err := s.db.Categories().FindOne(ctx, bson.M{"_id": oid}).Decode(&category); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}
	return &category, nil
}

func (s *CategoryService) Create(ctx context.Context, req *CategoryRequest) (*models.Category, error) {
	category := &models.Category{
		Name:  req.Name,
		Icon:  req.Icon,
		Color: req.Color,
	}

	result, err := s.db.Categories().InsertOne(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	category.ID = result.InsertedID.(primitive.ObjectID)
	return category, nil
}

// Update replaces the mutable attributes and returns the new document.
func (s *CategoryService) Update(ctx context.Context, id string, req *CategoryRequest) (*models.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	update := bson.M{"$set": bson.M{
		"name":  req.Name,
		"icon":  req.Icon,
		"color": req.Color,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var category models.Category
	if err := s.db.Categories().FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&category); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return &category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := s.db.Categories().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Exists reports whether a category id resolves to a stored category.
func (s *CategoryService) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	count, err := s.db.Categories().CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to check category: %w", err)
	}
	return count > 0, nil
}
