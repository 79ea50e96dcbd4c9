package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/sundayts/portfolio/internal/logging"
	"github.com/sundayts/portfolio/internal/metrics"
	"github.com/sundayts/portfolio/internal/newsletter/domain"
	"github.com/sundayts/portfolio/internal/newsletter/repository"
)

// NewsletterService handles newsletter signups
type NewsletterService struct {
	store   repository.Store
	log     *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewNewsletterService creates a new newsletter service
func NewNewsletterService(store repository.Store, log *zap.Logger, m *metrics.Metrics) *NewsletterService {
	if log == nil {
		log = zap.NewNop()
	}
	return &NewsletterService{
		store:   store,
		log:     log,
		metrics: m,
		now:     time.Now,
	}
}

// Subscribe validates email and stores it. It returns
// domain.ErrInvalidEmail or domain.ErrAlreadySubscribed for visitor errors.
func (s *NewsletterService) Subscribe(ctx context.Context, email string) (*domain.Subscriber, error) {
	log := logging.FromContext(ctx, s.log)

	addr, err := domain.NormalizeEmail(email)
	if err != nil {
		s.count("invalid")
		return nil, err
	}

	sub := domain.Subscriber{Email: addr, SubscribedAt: s.now().UTC()}
	if err := s.store.Add(ctx, sub); err != nil {
		if errors.Is(err, domain.ErrAlreadySubscribed) {
			s.count("duplicate")
			return nil, err
		}
		s.count("error")
		log.Error("newsletter signup failed", zap.Error(err))
		return nil, err
	}

	s.count("created")
	log.Info("newsletter signup", zap.String("email_domain", domainPart(addr)))
	return &sub, nil
}

// Count returns the number of subscribers.
func (s *NewsletterService) Count(ctx context.Context) (int64, error) {
	return s.store.Count(ctx)
}

func (s *NewsletterService) count(result string) {
	if s.metrics != nil {
		s.metrics.Subscriptions.WithLabelValues(result).Inc()
	}
}

func domainPart(addr string) string {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == '@' {
			return addr[i+1:]
		}
	}
	return ""
}
