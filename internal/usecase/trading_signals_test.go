package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"SmartMoney/internal/domain/models"
	"SmartMoney/internal/services/signals"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUseCase(store *fakeStore, pub *fakePublisher, m *fakeMetrics) *TradingSignalsUseCase {
	p := NewSignalPipeline(signals.NewEngine(), m, nil, 2)
	return NewTradingSignalsUseCase(store, p, pub, m, nil, time.Second)
}

func TestTradingSignalsGeneratePublishes(t *testing.T) {
	store := &fakeStore{records: []models.OptionAnalysis{strongBuy("RELIANCE", 2900), weakSell("SBIN")}}
	pub := &fakePublisher{}
	uc := newUseCase(store, pub, newFakeMetrics())

	res, err := uc.Generate(context.Background(), models.DefaultFilter())
	require.NoError(t, err)

	assert.Equal(t, 2, res.TotalSignals)
	assert.Equal(t, "RELIANCE", res.Signals[0].Symbol)
	require.Len(t, pub.batches, 1)
	assert.Same(t, res, pub.batches[0])
}

func TestTradingSignalsGenerateStoreError(t *testing.T) {
	m := newFakeMetrics()
	uc := newUseCase(&fakeStore{err: errors.New("connection refused")}, &fakePublisher{}, m)

	_, err := uc.Generate(context.Background(), models.DefaultFilter())
	assert.ErrorContains(t, err, "connection refused")
	assert.Equal(t, 1, m.errors["store_load"])
}

func TestTradingSignalsPublishFailureIsNotFatal(t *testing.T) {
	m := newFakeMetrics()
	pub := &fakePublisher{err: errors.New("broker down")}
	uc := newUseCase(&fakeStore{records: []models.OptionAnalysis{strongBuy("TCS", 4000)}}, pub, m)

	res, err := uc.Generate(context.Background(), models.DefaultFilter())
	require.NoError(t, err)
	assert.Len(t, res.Signals, 1)
	assert.Equal(t, 1, m.errors["publish_signals"])
}

func TestTradingSignalsEmptyStoreSkipsPublish(t *testing.T) {
	pub := &fakePublisher{}
	uc := newUseCase(&fakeStore{}, pub, newFakeMetrics())

	res, err := uc.Generate(context.Background(), models.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, NoDataMessage, res.Message)
	assert.Empty(t, pub.batches)
}

func TestTradingSignalsWithoutPublisher(t *testing.T) {
	p := NewSignalPipeline(signals.NewEngine(), nil, nil, 1)
	uc := NewTradingSignalsUseCase(&fakeStore{records: []models.OptionAnalysis{strongBuy("TCS", 4000)}}, p, nil, nil, nil, 0)

	res, err := uc.Generate(context.Background(), models.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalSignals)
	assert.NoError(t, uc.Health(context.Background()))
}
