package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalysisIngestHandlerStores(t *testing.T) {
	store := &fakeStore{}
	h := NewAnalysisIngestHandler("option-analysis", store, newFakeMetrics())

	payload := []byte(`{"symbol":" infy ","score":42.5,"overall_pcr":0.8,"current_price":1510,
		"support_levels":[1490,1470],"unusual_activity":["Heavy Put Writing at 1500"],"reasoning":"puts building"}`)
	require.NoError(t, h.Handle(context.Background(), payload))

	require.Len(t, store.stored, 1)
	got := store.stored[0]
	assert.Equal(t, "INFY", got.Symbol)
	assert.Equal(t, 42.5, got.Score)
	assert.Equal(t, []float64{1490, 1470}, got.SupportLevels)
	assert.Zero(t, got.MaxPain)
	assert.False(t, got.UpdatedAt.IsZero())
	assert.Equal(t, "option-analysis", h.Topic())
}

func TestAnalysisIngestHandlerRejects(t *testing.T) {
	m := newFakeMetrics()
	h := NewAnalysisIngestHandler("t", &fakeStore{}, m)

	assert.Error(t, h.Handle(context.Background(), []byte(`{not json`)))
	assert.Error(t, h.Handle(context.Background(), []byte(`{"score":1}`)))
	assert.Equal(t, 1, m.errors["consumer_unmarshal"])
	assert.Equal(t, 1, m.errors["consumer_validate"])

	h = NewAnalysisIngestHandler("t", &fakeStore{err: errors.New("down")}, m)
	assert.Error(t, h.Handle(context.Background(), []byte(`{"symbol":"TCS"}`)))
	assert.Equal(t, 1, m.errors["consumer_store"])
}
