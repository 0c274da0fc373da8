// internal/database/mongo.go
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/eshopx/eshop-backend/internal/config"
)

// DB wraps the mongo client and the application database handle.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

func Connect(cfg config.DatabaseConfig) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ConnectTimeout)*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test connection
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.Info("Database connection established successfully")

	return &DB{
		client: client,
		db:     client.Database(cfg.Name),
	}, nil
}

// NewWithDatabase wraps an existing database handle. Tests use it to
// point services at a mocked deployment.
func NewWithDatabase(db *mongo.Database) *DB {
	return &DB{client: db.Client(), db: db}
}

func (d *DB) Close(ctx context.Context) {
	if err := d.client.Disconnect(ctx); err != nil {
		logrus.WithError(err).Error("Error closing database connection")
		return
	}
	logrus.Info("Database connection closed successfully")
}

func (d *DB) Users() *mongo.Collection      { return d.db.Collection("users") }
func (d *DB) Categories() *mongo.Collection { return d.db.Collection("categories") }
func (d *DB) Products() *mongo.Collection   { return d.db.Collection("products") }
func (d *DB) Orders() *mongo.Collection     { return d.db.Collection("orders") }
func (d *DB) OrderItems() *mongo.Collection { return d.db.Collection("orderitems") }
func (d *DB) AuditLogs() *mongo.Collection  { return d.db.Collection("audit_logs") }
