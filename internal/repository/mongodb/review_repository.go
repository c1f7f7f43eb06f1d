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

// ReviewRepository persists customer reviews.
type ReviewRepository struct {
	repo *Repository
}

// NewReviewRepository wires the adapter onto the shared client.
func NewReviewRepository(repo *Repository) *ReviewRepository {
	return &ReviewRepository{repo: repo}
}

// ListReviews returns reviews newest first, optionally only approved ones.
func (r *ReviewRepository) ListReviews(ctx context.Context, approvedOnly bool) ([]models.Review, error) {
	filter := bson.M{}
	if approvedOnly {
		filter["approved"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.repo.collection(collReviews).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find reviews: %w", err)
	}

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}
	return reviews, nil
}

// GetReview returns one review, or nil when the id does not exist.
func (r *ReviewRepository) GetReview(ctx context.Context, id string) (*models.Review, error) {
	var review models.Review
	err := r.repo.collection(collReviews).FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find review %s: %w", id, err)
	}
	return &review, nil
}

// InsertReview writes a freshly submitted review.
func (r *ReviewRepository) InsertReview(ctx context.Context, review models.Review) error {
	if _, err := r.repo.collection(collReviews).InsertOne(ctx, review); err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

// SetReviewApproved flips the moderation flag and returns the result, or nil
// when the id does not exist.
func (r *ReviewRepository) SetReviewApproved(ctx context.Context, id string, approved bool) (*models.Review, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var review models.Review
	err := r.repo.collection(collReviews).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"approved": approved}}, opts).
		Decode(&review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("approve review %s: %w", id, err)
	}
	return &review, nil
}

// DeleteReview removes one review and reports whether it existed.
func (r *ReviewRepository) DeleteReview(ctx context.Context, id string) (bool, error) {
	res, err := r.repo.collection(collReviews).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete review %s: %w", id, err)
	}
	return res.DeletedCount > 0, nil
}
