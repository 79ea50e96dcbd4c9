package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sundayts/portfolio/internal/metrics"
	"github.com/sundayts/portfolio/internal/newsletter/domain"
	"github.com/sundayts/portfolio/internal/newsletter/repository"
)

type brokenStore struct{}

func (brokenStore) Add(context.Context, domain.Subscriber) error { return errors.New("disk full") }
func (brokenStore) Count(context.Context) (int64, error)         { return 0, errors.New("disk full") }

func TestNewsletterService_Subscribe(t *testing.T) {
	m := metrics.New()
	svc := NewNewsletterService(repository.NewMemoryStore(), nil, m)
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	ctx := context.Background()

	sub, err := svc.Subscribe(ctx, " Reader@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", sub.Email)
	assert.Equal(t, fixed, sub.SubscribedAt)

	_, err = svc.Subscribe(ctx, "reader@EXAMPLE.com")
	assert.ErrorIs(t, err, domain.ErrAlreadySubscribed)

	_, err = svc.Subscribe(ctx, "not-an-email")
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Subscriptions.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Subscriptions.WithLabelValues("duplicate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Subscriptions.WithLabelValues("invalid")))
}

func TestNewsletterService_StoreFailure(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	svc := NewNewsletterService(brokenStore{}, zap.New(core), nil)

	_, err := svc.Subscribe(context.Background(), "a@example.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrAlreadySubscribed)
	assert.Equal(t, 1, logs.FilterMessage("newsletter signup failed").Len())
}
