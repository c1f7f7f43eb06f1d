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

// InventoryRepository persists inventory items, the stats singleton, and the
// append-only activity feed.
type InventoryRepository struct {
	repo *Repository
}

// NewInventoryRepository wires the adapter onto the shared client.
func NewInventoryRepository(repo *Repository) *InventoryRepository {
	return &InventoryRepository{repo: repo}
}

// ListItems returns every item as stored.
func (r *InventoryRepository) ListItems(ctx context.Context) ([]models.InventoryItem, error) {
	cursor, err := r.repo.collection(collInventoryItems).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find inventory items: %w", err)
	}

	items := []models.InventoryItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode inventory items: %w", err)
	}
	return items, nil
}

// GetItem returns one item, or nil when the id does not exist.
func (r *InventoryRepository) GetItem(ctx context.Context, id string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.repo.collection(collInventoryItems).FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find inventory item %s: %w", id, err)
	}
	return &item, nil
}

// InsertItem writes a freshly created item.
func (r *InventoryRepository) InsertItem(ctx context.Context, item models.InventoryItem) error {
	if _, err := r.repo.collection(collInventoryItems).InsertOne(ctx, item); err != nil {
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// ApplyItemPatch sets and unsets the given fields on one item and returns the
// resulting document, or nil when the id does not exist.
func (r *InventoryRepository) ApplyItemPatch(ctx context.Context, id string, set map[string]any, unset []string) (*models.InventoryItem, error) {
	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = bson.M(set)
	}
	if len(unset) > 0 {
		fields := bson.M{}
		for _, f := range unset {
			fields[f] = ""
		}
		update["$unset"] = fields
	}
	if len(update) == 0 {
		return r.GetItem(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var item models.InventoryItem
	err := r.repo.collection(collInventoryItems).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).
		Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("patch inventory item %s: %w", id, err)
	}
	return &item, nil
}

// DeleteItem hard-deletes one item and reports whether it existed.
func (r *InventoryRepository) DeleteItem(ctx context.Context, id string) (bool, error) {
	res, err := r.repo.collection(collInventoryItems).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete inventory item %s: %w", id, err)
	}
	return res.DeletedCount > 0, nil
}

// SaveStats overwrites the stats singleton; the last writer wins.
func (r *InventoryRepository) SaveStats(ctx context.Context, stats models.InventoryStats) error {
	doc := bson.M{
		"totalItems":     stats.TotalItems,
		"lowStockAlerts": stats.LowStockAlerts,
		"criticalItems":  stats.CriticalItems,
		"monthlySpend":   stats.MonthlySpend,
		"updatedAt":      stats.UpdatedAt,
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.repo.collection(collStats).ReplaceOne(ctx, bson.M{"_id": statsInventoryID}, doc, opts); err != nil {
		return fmt.Errorf("save inventory stats: %w", err)
	}
	return nil
}

// AppendActivity records one restock or consume event. Records are never
// mutated afterwards.
func (r *InventoryRepository) AppendActivity(ctx context.Context, activity models.InventoryActivity) error {
	if _, err := r.repo.collection(collInventoryActivity).InsertOne(ctx, activity); err != nil {
		return fmt.Errorf("append inventory activity: %w", err)
	}
	return nil
}

// ListActivity returns the most recent activity records, newest first.
func (r *InventoryRepository) ListActivity(ctx context.Context, limit int64) ([]models.InventoryActivity, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)

	cursor, err := r.repo.collection(collInventoryActivity).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find inventory activity: %w", err)
	}

	records := []models.InventoryActivity{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode inventory activity: %w", err)
	}
	return records, nil
}

// CountItemsBySupplier counts items carrying the given supplier name. The link
// is by name, not by foreign key.
func (r *InventoryRepository) CountItemsBySupplier(ctx context.Context, supplier string) (int, error) {
	n, err := r.repo.collection(collInventoryItems).CountDocuments(ctx, bson.M{"supplier": supplier})
	if err != nil {
		return 0, fmt.Errorf("count items for supplier %s: %w", supplier, err)
	}
	return int(n), nil
}

// WithTransaction exposes the shared transaction runner so the service can
// commit an item write and the stats overwrite as one atomic pair.
func (r *InventoryRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.repo.WithTransaction(ctx, fn)
}
