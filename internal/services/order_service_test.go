// internal/services/order_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/eshopx/eshop-backend/internal/database"
	"github.com/eshopx/eshop-backend/internal/models"
)

func TestSumLineTotals(t *testing.T) {
	// two of productA at 10, one of productB at 5
	assert.Equal(t, 25.0, sumLineTotals([]float64{2 * 10.0, 1 * 5.0}))
}

func TestSumLineTotalsEmpty(t *testing.T) {
	assert.Equal(t, 0.0, sumLineTotals(nil))
}

func TestSumLineTotalsSingleItem(t *testing.T) {
	assert.Equal(t, 39.98, sumLineTotals([]float64{2 * 19.99}))
}

func TestDeleteOrderCascadesToOrderItems(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("every referenced item gets a delete", func(mt *mtest.T) {
		svc := NewOrderService(database.NewWithDatabase(mt.DB), nil)

		orderID := primitive.NewObjectID()
		itemA := primitive.NewObjectID()
		itemB := primitive.NewObjectID()

		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: orderID},
				{Key: "orderItems", Value: bson.A{itemA, itemB}},
				{Key: "status", Value: models.OrderStatusPending},
			}}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		require.NoError(mt, svc.Delete(context.Background(), orderID.Hex()))

		deleted := []primitive.ObjectID{}
		for _, evt := range mt.GetAllStartedEvents() {
			if evt.CommandName != "delete" {
				continue
			}
			assert.Equal(mt, "orderitems", evt.Command.Lookup("delete").StringValue())
			stmt := evt.Command.Lookup("deletes").Array().Index(0).Value().Document()
			deleted = append(deleted, stmt.Lookup("q", "_id").ObjectID())
		}
		assert.Equal(mt, []primitive.ObjectID{itemA, itemB}, deleted)
	})

	mt.Run("a failed item delete does not abort the cascade", func(mt *mtest.T) {
		svc := NewOrderService(database.NewWithDatabase(mt.DB), nil)

		itemA := primitive.NewObjectID()
		itemB := primitive.NewObjectID()

		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "orderItems", Value: bson.A{itemA, itemB}},
			}}),
			mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 11600, Message: "interrupted", Name: "InterruptedAtShutdown"}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		require.NoError(mt, svc.Delete(context.Background(), primitive.NewObjectID().Hex()))

		var deletes int
		for _, evt := range mt.GetAllStartedEvents() {
			if evt.CommandName == "delete" {
				deletes++
			}
		}
		assert.Equal(mt, 2, deletes)
	})
}
