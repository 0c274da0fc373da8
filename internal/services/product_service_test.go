// internal/services/product_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/eshopx/eshop-backend/internal/database"
)

func TestCreateProductUnknownCategoryStopsBeforeInsert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("no product document is written", func(mt *mtest.T) {
		db := database.NewWithDatabase(mt.DB)
		svc := NewProductService(db, NewCategoryService(db))

		// The category lookup counts zero matches.
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "eshop.categories", mtest.FirstBatch))

		req := &ProductRequest{
			Name:        "Desk",
			Description: "Oak standing desk",
			Price:       499.99,
			Category:    primitive.NewObjectID().Hex(),
		}
		_, err := svc.Create(context.Background(), req, "http://localhost:3000/public/uploads/desk.png")
		assert.ErrorIs(mt, err, ErrInvalidCategory)

		for _, evt := range mt.GetAllStartedEvents() {
			assert.NotEqual(mt, "insert", evt.CommandName)
		}
	})

	mt.Run("malformed category id never reaches the store", func(mt *mtest.T) {
		db := database.NewWithDatabase(mt.DB)
		svc := NewProductService(db, NewCategoryService(db))

		req := &ProductRequest{
			Name:        "Desk",
			Description: "Oak standing desk",
			Price:       499.99,
			Category:    "not-a-hex-id",
		}
		_, err := svc.Create(context.Background(), req, "http://localhost:3000/public/uploads/desk.png")
		assert.ErrorIs(mt, err, ErrInvalidCategory)
		assert.Empty(mt, mt.GetAllStartedEvents())
	})
}
