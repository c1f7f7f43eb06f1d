package reviews

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oumarbarry/coqdor/internal/domain/apperrors"
	"github.com/oumarbarry/coqdor/internal/domain/models"
)

type fakeReviewStore struct {
	reviews map[string]models.Review
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{reviews: map[string]models.Review{}}
}

func (f *fakeReviewStore) ListReviews(_ context.Context, approvedOnly bool) ([]models.Review, error) {
	reviews := []models.Review{}
	for _, r := range f.reviews {
		if approvedOnly && !r.Approved {
			continue
		}
		reviews = append(reviews, r)
	}
	return reviews, nil
}

func (f *fakeReviewStore) GetReview(_ context.Context, id string) (*models.Review, error) {
	review, ok := f.reviews[id]
	if !ok {
		return nil, nil
	}
	found := review
	return &found, nil
}

func (f *fakeReviewStore) InsertReview(_ context.Context, review models.Review) error {
	f.reviews[review.ID] = review
	return nil
}

func (f *fakeReviewStore) SetReviewApproved(_ context.Context, id string, approved bool) (*models.Review, error) {
	review, ok := f.reviews[id]
	if !ok {
		return nil, nil
	}
	review.Approved = approved
	f.reviews[id] = review
	updated := review
	return &updated, nil
}

func (f *fakeReviewStore) DeleteReview(_ context.Context, id string) (bool, error) {
	if _, ok := f.reviews[id]; !ok {
		return false, nil
	}
	delete(f.reviews, id)
	return true, nil
}

func adminSession() *models.Session {
	return &models.Session{UID: "admin-1", Roles: []models.Role{models.RoleAdmin}}
}

func intp(v int) *int { return &v }

func newTestService(store *fakeReviewStore) *Service {
	svc := NewService(store, nil)
	svc.now = func() time.Time {
		return time.Date(2025, time.September, 1, 9, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestSubmitStartsHidden(t *testing.T) {
	store := newFakeReviewStore()
	svc := newTestService(store)
	ctx := context.Background()

	review, err := svc.Submit(ctx, models.SubmitReviewInput{
		Author:  "Mariama",
		Rating:  intp(5),
		Comment: "Beautiful birds, fast delivery.",
	})
	require.NoError(t, err)
	assert.False(t, review.Approved)

	public, err := svc.ListPublic(ctx)
	require.NoError(t, err)
	assert.Empty(t, public)

	all, err := svc.ListAll(ctx, adminSession())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSubmitValidation(t *testing.T) {
	svc := newTestService(newFakeReviewStore())
	ctx := context.Background()

	cases := []models.SubmitReviewInput{
		{Rating: intp(4), Comment: "ok"},
		{Author: "A", Rating: intp(4)},
		{Author: "A", Comment: "ok"},
		{Author: "A", Rating: intp(0), Comment: "ok"},
		{Author: "A", Rating: intp(6), Comment: "ok"},
	}

	for _, input := range cases {
		_, err := svc.Submit(ctx, input)
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeInvalidRequest, apperrors.CodeOf(err))
	}
}

func TestApproveMakesPublic(t *testing.T) {
	store := newFakeReviewStore()
	svc := newTestService(store)
	ctx := context.Background()

	review, err := svc.Submit(ctx, models.SubmitReviewInput{Author: "Sekou", Rating: intp(4), Comment: "Good"})
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, adminSession(), review.ID)
	require.NoError(t, err)
	assert.True(t, approved.Approved)

	public, err := svc.ListPublic(ctx)
	require.NoError(t, err)
	assert.Len(t, public, 1)
}

func TestModerationRequiresAdmin(t *testing.T) {
	store := newFakeReviewStore()
	svc := newTestService(store)
	ctx := context.Background()
	staff := &models.Session{UID: "staff-1", Roles: []models.Role{models.RoleStaff}}

	review, err := svc.Submit(ctx, models.SubmitReviewInput{Author: "Sekou", Rating: intp(4), Comment: "Good"})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, staff, review.ID)
	assert.Equal(t, apperrors.CodeForbidden, apperrors.CodeOf(err))

	err = svc.Delete(ctx, staff, review.ID)
	assert.Equal(t, apperrors.CodeForbidden, apperrors.CodeOf(err))

	// Staff can still read the moderation queue.
	_, err = svc.ListAll(ctx, staff)
	assert.NoError(t, err)
}

func TestApproveMissingReview(t *testing.T) {
	svc := newTestService(newFakeReviewStore())

	_, err := svc.Approve(context.Background(), adminSession(), "ghost")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}
