package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oumarbarry/coqdor/internal/domain/models"
)

// SupplierRepository persists the supplier directory.
type SupplierRepository struct {
	repo *Repository
}

// NewSupplierRepository wires the adapter onto the shared client.
func NewSupplierRepository(repo *Repository) *SupplierRepository {
	return &SupplierRepository{repo: repo}
}

// ListSuppliers returns every supplier as stored.
func (r *SupplierRepository) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	cursor, err := r.repo.collection(collSuppliers).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find suppliers: %w", err)
	}

	suppliers := []models.Supplier{}
	if err := cursor.All(ctx, &suppliers); err != nil {
		return nil, fmt.Errorf("decode suppliers: %w", err)
	}
	return suppliers, nil
}

// GetSupplier returns one supplier, or nil when the id does not exist.
func (r *SupplierRepository) GetSupplier(ctx context.Context, id string) (*models.Supplier, error) {
	var supplier models.Supplier
	err := r.repo.collection(collSuppliers).FindOne(ctx, bson.M{"_id": id}).Decode(&supplier)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find supplier %s: %w", id, err)
	}
	return &supplier, nil
}

// InsertSupplier writes a new directory entry.
func (r *SupplierRepository) InsertSupplier(ctx context.Context, supplier models.Supplier) error {
	if _, err := r.repo.collection(collSuppliers).InsertOne(ctx, supplier); err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// ApplySupplierPatch sets the given fields on one supplier and returns the
// result, or nil when the id does not exist.
func (r *SupplierRepository) ApplySupplierPatch(ctx context.Context, id string, set map[string]any) (*models.Supplier, error) {
	if len(set) == 0 {
		return r.GetSupplier(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var supplier models.Supplier
	err := r.repo.collection(collSuppliers).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M(set)}, opts).
		Decode(&supplier)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("patch supplier %s: %w", id, err)
	}
	return &supplier, nil
}

// DeleteSupplier removes one supplier and reports whether it existed.
func (r *SupplierRepository) DeleteSupplier(ctx context.Context, id string) (bool, error) {
	res, err := r.repo.collection(collSuppliers).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete supplier %s: %w", id, err)
	}
	return res.DeletedCount > 0, nil
}
