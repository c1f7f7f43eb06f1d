package reviews

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/oumarbarry/coqdor/internal/auth"
	"github.com/oumarbarry/coqdor/internal/domain/apperrors"
	"github.com/oumarbarry/coqdor/internal/domain/models"
)

// Store is the review persistence surface.
type Store interface {
	ListReviews(ctx context.Context, approvedOnly bool) ([]models.Review, error)
	GetReview(ctx context.Context, id string) (*models.Review, error)
	InsertReview(ctx context.Context, review models.Review) error
	SetReviewApproved(ctx context.Context, id string, approved bool) (*models.Review, error)
	DeleteReview(ctx context.Context, id string) (bool, error)
}

// Service implements customer feedback with admin moderation. Submission and
// the approved listing are public; everything else goes through the gate.
type Service struct {
	store  Store
	gate   auth.Gate
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new service instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		gate:   auth.ReviewGate(),
		logger: logger,
		now:    time.Now,
	}
}

// Submit accepts feedback from the public site. New reviews stay hidden until
// approved.
func (s *Service) Submit(ctx context.Context, input models.SubmitReviewInput) (*models.Review, error) {
	if strings.TrimSpace(input.Author) == "" {
		return nil, apperrors.New(apperrors.CodeInvalidRequest, "author is required")
	}
	if strings.TrimSpace(input.Comment) == "" {
		return nil, apperrors.New(apperrors.CodeInvalidRequest, "comment is required")
	}
	if input.Rating == nil || *input.Rating < 1 || *input.Rating > 5 {
		return nil, apperrors.New(apperrors.CodeInvalidRequest, "rating must be between 1 and 5")
	}

	review := models.Review{
		ID:        uuid.NewString(),
		Author:    strings.TrimSpace(input.Author),
		Rating:    *input.Rating,
		Comment:   strings.TrimSpace(input.Comment),
		Approved:  false,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.InsertReview(ctx, review); err != nil {
		return nil, err
	}

	s.logger.Info("review submitted", zap.String("review_id", review.ID), zap.Int("rating", review.Rating))
	return &review, nil
}

// ListPublic returns approved reviews only; no session required.
func (s *Service) ListPublic(ctx context.Context) ([]models.Review, error) {
	return s.store.ListReviews(ctx, true)
}

// ListAll returns every review, pending ones included.
func (s *Service) ListAll(ctx context.Context, sess *models.Session) ([]models.Review, error) {
	if err := s.gate.Check(sess, auth.ActionRead); err != nil {
		return nil, err
	}
	return s.store.ListReviews(ctx, false)
}

// Approve makes a review visible on the public site.
func (s *Service) Approve(ctx context.Context, sess *models.Session, id string) (*models.Review, error) {
	if err := s.gate.Check(sess, auth.ActionApprove); err != nil {
		return nil, err
	}

	review, err := s.store.SetReviewApproved(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, apperrors.Newf(apperrors.CodeNotFound, "review %s not found", id)
	}
	return review, nil
}

// Delete removes a review outright.
func (s *Service) Delete(ctx context.Context, sess *models.Session, id string) error {
	if err := s.gate.Check(sess, auth.ActionDelete); err != nil {
		return err
	}

	deleted, err := s.store.DeleteReview(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.Newf(apperrors.CodeNotFound, "review %s not found", id)
	}
	return nil
}
