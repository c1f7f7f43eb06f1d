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

// RoosterRepository persists roosters and the breed registry.
type RoosterRepository struct {
	repo *Repository
}

// NewRoosterRepository wires the adapter onto the shared client.
func NewRoosterRepository(repo *Repository) *RoosterRepository {
	return &RoosterRepository{repo: repo}
}

// ListRoosters returns every bird as stored.
func (r *RoosterRepository) ListRoosters(ctx context.Context) ([]models.Rooster, error) {
	cursor, err := r.repo.collection(collRoosters).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find roosters: %w", err)
	}

	roosters := []models.Rooster{}
	if err := cursor.All(ctx, &roosters); err != nil {
		return nil, fmt.Errorf("decode roosters: %w", err)
	}
	return roosters, nil
}

// GetRooster returns one bird, or nil when the id does not exist.
func (r *RoosterRepository) GetRooster(ctx context.Context, id string) (*models.Rooster, error) {
	var rooster models.Rooster
	err := r.repo.collection(collRoosters).FindOne(ctx, bson.M{"_id": id}).Decode(&rooster)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find rooster %s: %w", id, err)
	}
	return &rooster, nil
}

// InsertRooster writes a freshly registered bird.
func (r *RoosterRepository) InsertRooster(ctx context.Context, rooster models.Rooster) error {
	if _, err := r.repo.collection(collRoosters).InsertOne(ctx, rooster); err != nil {
		return fmt.Errorf("insert rooster: %w", err)
	}
	return nil
}

// ApplyRoosterPatch sets the given fields on one bird and returns the result,
// or nil when the id does not exist.
func (r *RoosterRepository) ApplyRoosterPatch(ctx context.Context, id string, set map[string]any) (*models.Rooster, error) {
	if len(set) == 0 {
		return r.GetRooster(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var rooster models.Rooster
	err := r.repo.collection(collRoosters).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M(set)}, opts).
		Decode(&rooster)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("patch rooster %s: %w", id, err)
	}
	return &rooster, nil
}

// DeleteRooster hard-deletes one bird and reports whether it existed.
func (r *RoosterRepository) DeleteRooster(ctx context.Context, id string) (bool, error) {
	res, err := r.repo.collection(collRoosters).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete rooster %s: %w", id, err)
	}
	return res.DeletedCount > 0, nil
}

// CountRoostersByBreed counts birds referencing the given breed name.
func (r *RoosterRepository) CountRoostersByBreed(ctx context.Context, breed string) (int, error) {
	n, err := r.repo.collection(collRoosters).CountDocuments(ctx, bson.M{"breed": breed})
	if err != nil {
		return 0, fmt.Errorf("count roosters for breed %s: %w", breed, err)
	}
	return int(n), nil
}

// ListBreeds returns the full breed registry.
func (r *RoosterRepository) ListBreeds(ctx context.Context) ([]models.Breed, error) {
	cursor, err := r.repo.collection(collBreeds).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find breeds: %w", err)
	}

	breeds := []models.Breed{}
	if err := cursor.All(ctx, &breeds); err != nil {
		return nil, fmt.Errorf("decode breeds: %w", err)
	}
	return breeds, nil
}

// GetBreedByName returns a breed by its unique name, or nil when absent.
func (r *RoosterRepository) GetBreedByName(ctx context.Context, name string) (*models.Breed, error) {
	var breed models.Breed
	err := r.repo.collection(collBreeds).FindOne(ctx, bson.M{"name": name}).Decode(&breed)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find breed %s: %w", name, err)
	}
	return &breed, nil
}

// GetBreed returns a breed by id, or nil when absent.
func (r *RoosterRepository) GetBreed(ctx context.Context, id string) (*models.Breed, error) {
	var breed models.Breed
	err := r.repo.collection(collBreeds).FindOne(ctx, bson.M{"_id": id}).Decode(&breed)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find breed %s: %w", id, err)
	}
	return &breed, nil
}

// InsertBreed writes a new registry entry.
func (r *RoosterRepository) InsertBreed(ctx context.Context, breed models.Breed) error {
	if _, err := r.repo.collection(collBreeds).InsertOne(ctx, breed); err != nil {
		return fmt.Errorf("insert breed: %w", err)
	}
	return nil
}

// DeleteBreed removes one registry entry and reports whether it existed.
func (r *RoosterRepository) DeleteBreed(ctx context.Context, id string) (bool, error) {
	res, err := r.repo.collection(collBreeds).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete breed %s: %w", id, err)
	}
	return res.DeletedCount > 0, nil
}
