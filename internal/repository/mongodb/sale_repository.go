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

// SaleRepository persists sales transactions.
type SaleRepository struct {
	repo *Repository
}

// NewSaleRepository wires the adapter onto the shared client.
func NewSaleRepository(repo *Repository) *SaleRepository {
	return &SaleRepository{repo: repo}
}

// ListSales returns every transaction, newest first.
func (r *SaleRepository) ListSales(ctx context.Context) ([]models.SalesTransaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "soldAt", Value: -1}})

	cursor, err := r.repo.collection(collSales).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find sales: %w", err)
	}

	sales := []models.SalesTransaction{}
	if err := cursor.All(ctx, &sales); err != nil {
		return nil, fmt.Errorf("decode sales: %w", err)
	}
	return sales, nil
}

// GetSale returns one transaction, or nil when the id does not exist.
func (r *SaleRepository) GetSale(ctx context.Context, id string) (*models.SalesTransaction, error) {
	var sale models.SalesTransaction
	err := r.repo.collection(collSales).FindOne(ctx, bson.M{"_id": id}).Decode(&sale)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find sale %s: %w", id, err)
	}
	return &sale, nil
}

// InsertSale writes a freshly recorded transaction.
func (r *SaleRepository) InsertSale(ctx context.Context, sale models.SalesTransaction) error {
	if _, err := r.repo.collection(collSales).InsertOne(ctx, sale); err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// ApplySalePatch sets the given fields on one transaction and returns the
// result, or nil when the id does not exist.
func (r *SaleRepository) ApplySalePatch(ctx context.Context, id string, set map[string]any) (*models.SalesTransaction, error) {
	if len(set) == 0 {
		return r.GetSale(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var sale models.SalesTransaction
	err := r.repo.collection(collSales).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M(set)}, opts).
		Decode(&sale)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("patch sale %s: %w", id, err)
	}
	return &sale, nil
}

// DeleteSale removes one transaction and reports whether it existed.
func (r *SaleRepository) DeleteSale(ctx context.Context, id string) (bool, error) {
	res, err := r.repo.collection(collSales).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete sale %s: %w", id, err)
	}
	return res.DeletedCount > 0, nil
}
