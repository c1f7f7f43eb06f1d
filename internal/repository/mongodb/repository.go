package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used across the application.
const (
	collInventoryItems    = "inventory_items"
	collInventoryActivity = "inventory_activity"
	collStats             = "stats"
	collRoosters          = "roosters"
	collBreeds            = "breeds"
	collSales             = "sales"
	collSuppliers         = "suppliers"
	collReviews           = "reviews"
)

// Well-known singleton document id inside the stats collection.
const statsInventoryID = "inventory"

// Repository owns the MongoDB client shared by the per-collection adapters.
// It is constructed once in main and injected everywhere it is needed.
type Repository struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to MongoDB and verifies the connection.
func New(ctx context.Context, uri string, dbName string) (*Repository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Repository{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

// WithTransaction runs fn inside a MongoDB transaction. Collection operations
// performed with the callback context join the transaction; the driver retries
// transient commit conflicts with its own bounded policy, and a conflict that
// survives the retries surfaces as a failed operation to the caller.
func (r *Repository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start mongodb session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// Close closes the MongoDB connection.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *Repository) collection(name string) *mongo.Collection {
	return r.db.Collection(name)
}
