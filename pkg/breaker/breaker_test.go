package breaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakerTripsAfterConsecutiveFailures(t *testing.T) {
	var transitions []string
	b := New(Settings{
		Name:        "source",
		MaxFailures: 2,
		Timeout:     time.Hour,
		OnStateChange: func(_, from, to string) {
			transitions = append(transitions, from+"->"+to)
		},
	})
	boom := errors.New("boom")

	_, err := b.Execute(func() (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	_, err = b.Execute(func() (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	called := false
	_, err = b.Execute(func() (any, error) { called = true; return nil, nil })
	assert.ErrorIs(t, err, ErrOpen)
	assert.False(t, called)
	assert.Equal(t, "open", b.State())
	assert.Equal(t, []string{"closed->open"}, transitions)
}

func TestBreakerPassesResults(t *testing.T) {
	b := New(Settings{Name: "ok"})
	v, err := b.Execute(func() (any, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, "closed", b.State())
}
