package faq

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Terellreed1/smokers-club-sub000/pkg/db/models"
)

type fakeFAQRepo struct {
	rows map[uuid.UUID]*models.FAQItem
}

func newFakeFAQRepo() *fakeFAQRepo {
	return &fakeFAQRepo{rows: make(map[uuid.UUID]*models.FAQItem)}
}

func (f *fakeFAQRepo) List(_ context.Context, publishedOnly bool) ([]models.FAQItem, error) {
	var out []models.FAQItem
	for _, row := range f.rows {
		if publishedOnly && !row.Published {
			continue
		}
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (f *fakeFAQRepo) FindByID(_ context.Context, id uuid.UUID) (*models.FAQItem, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *row
	return &clone, nil
}

func (f *fakeFAQRepo) Create(_ context.Context, item *models.FAQItem) (*models.FAQItem, error) {
	item.ID = uuid.New()
	f.rows[item.ID] = item
	return item, nil
}

func (f *fakeFAQRepo) Update(_ context.Context, item *models.FAQItem) (*models.FAQItem, error) {
	f.rows[item.ID] = item
	return item, nil
}

func (f *fakeFAQRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.rows, id)
	return nil
}

func TestPublicListHidesUnpublished(t *testing.T) {
	svc, err := NewService(newFakeFAQRepo())
	require.NoError(t, err)

	first, err := svc.Create(context.Background(), UpsertInput{
		Question: "Do you deliver?",
		Answer:   "Same day, citywide.",
		Position: intPtr(1),
	})
	require.NoError(t, err)

	hidden := false
	_, err = svc.Create(context.Background(), UpsertInput{
		Question:  "Draft question",
		Answer:    "Draft answer",
		Position:  intPtr(2),
		Published: &hidden,
	})
	require.NoError(t, err)

	public, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, first.ID, public[0].ID)

	all, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateValidates(t *testing.T) {
	svc, err := NewService(newFakeFAQRepo())
	require.NoError(t, err)

	item, err := svc.Create(context.Background(), UpsertInput{Question: "Q", Answer: "A"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), item.ID, UpsertInput{Question: " ", Answer: "A"})
	require.Error(t, err)

	_, err = svc.Update(context.Background(), uuid.New(), UpsertInput{Question: "Q", Answer: "A"})
	require.Error(t, err)
}

func intPtr(v int) *int { return &v }
