package reviews

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Terellreed1/smokers-club-sub000/pkg/db/models"
	"github.com/Terellreed1/smokers-club-sub000/pkg/pagination"
)

type fakeReviewRepo struct {
	rows map[uuid.UUID]*models.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{rows: make(map[uuid.UUID]*models.Review)}
}

func (f *fakeReviewRepo) Create(_ context.Context, review *models.Review) (*models.Review, error) {
	review.ID = uuid.New()
	f.rows[review.ID] = review
	return review, nil
}

func (f *fakeReviewRepo) List(_ context.Context, productID *uuid.UUID, approvedOnly bool, _ pagination.Params) ([]models.Review, int64, error) {
	var out []models.Review
	for _, row := range f.rows {
		if approvedOnly && !row.Approved {
			continue
		}
		if productID != nil && (row.ProductID == nil || *row.ProductID != *productID) {
			continue
		}
		out = append(out, *row)
	}
	return out, int64(len(out)), nil
}

func (f *fakeReviewRepo) SetApproved(_ context.Context, id uuid.UUID, approved bool) error {
	row, ok := f.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	row.Approved = approved
	return nil
}

func (f *fakeReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.rows, id)
	return nil
}

func TestSubmitStartsUnapproved(t *testing.T) {
	repo := newFakeReviewRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)

	dto, err := svc.Submit(context.Background(), SubmitInput{
		Author: "Jess",
		Rating: 5,
		Body:   "Best prerolls in town.",
	})
	require.NoError(t, err)
	assert.False(t, dto.Approved)

	public, err := svc.ListApproved(context.Background(), nil, pagination.Params{})
	require.NoError(t, err)
	assert.Empty(t, public.Reviews)

	require.NoError(t, svc.Approve(context.Background(), dto.ID))
	public, err = svc.ListApproved(context.Background(), nil, pagination.Params{})
	require.NoError(t, err)
	assert.Len(t, public.Reviews, 1)
}

func TestSubmitValidates(t *testing.T) {
	svc, err := NewService(newFakeReviewRepo())
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), SubmitInput{Author: "Jess", Rating: 6, Body: "x"})
	require.Error(t, err)

	_, err = svc.Submit(context.Background(), SubmitInput{Author: " ", Rating: 3, Body: "x"})
	require.Error(t, err)

	_, err = svc.Submit(context.Background(), SubmitInput{Author: "Jess", Rating: 3, Body: "  "})
	require.Error(t, err)
}

func TestApproveAndDeleteMissing(t *testing.T) {
	svc, err := NewService(newFakeReviewRepo())
	require.NoError(t, err)

	require.Error(t, svc.Approve(context.Background(), uuid.New()))
	require.Error(t, svc.Delete(context.Background(), uuid.New()))
}
