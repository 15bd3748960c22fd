// Package webpush delivers encrypted notification payloads to browser
// push subscriptions using the Web Push protocol with VAPID
// authentication.
package webpush

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/rgoodman/taskdeck-api/internal/config"
	"github.com/rgoodman/taskdeck-api/internal/domain"
	"github.com/rgoodman/taskdeck-api/internal/redact"
)

// ErrDeliveryFailed is returned when the push service rejects a delivery
// attempt. The subscription should be treated as expired and pruned.
var ErrDeliveryFailed = errors.New("push delivery failed")

// Sender sends notification payloads to push subscriptions. The server
// key pair and subscriber contact are fixed at construction; per-device
// encryption keys come from each subscription.
type Sender struct {
	vapidPublicKey  string
	vapidPrivateKey string
	subscriber      string
	timeout         time.Duration
	logger          *slog.Logger
}

// NewSender creates a Sender from the push configuration.
// If logger is nil, a default logger will be used.
func NewSender(cfg config.PushConfig, logger *slog.Logger) *Sender {
	if logger == nil {
		logger = slog.Default()
	}

	return &Sender{
		vapidPublicKey:  cfg.VAPIDPublicKey,
		vapidPrivateKey: cfg.VAPIDPrivateKey,
		subscriber:      cfg.Subscriber,
		timeout:         time.Duration(cfg.TimeoutSeconds) * time.Second,
		logger:          logger.With(slog.String("component", "webpush_sender")),
	}
}

// PublicKey returns the VAPID public key browsers need to subscribe.
func (s *Sender) PublicKey() string {
	return s.vapidPublicKey
}

// Send delivers one encrypted payload to one subscription. The attempt is
// bounded by the configured timeout. Returns ErrDeliveryFailed (wrapped
// with the status code) for any non-2xx push service response; callers
// prune the subscription on any error.
func (s *Sender) Send(ctx context.Context, sub *domain.PushSubscription, message []byte) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := webpush.SendNotificationWithContext(ctx, message, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dhKey,
			Auth:   sub.AuthKey,
		},
	}, &webpush.Options{
		Subscriber:      s.subscriber,
		VAPIDPublicKey:  s.vapidPublicKey,
		VAPIDPrivateKey: s.vapidPrivateKey,
		TTL:             86400,
		Urgency:         webpush.UrgencyNormal,
	})
	if err != nil {
		s.logger.Warn("push request failed",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", sub.UserID.String()))
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			s.logger.Error("failed to close push response body",
				slog.String("error", err.Error()))
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		s.logger.Warn("push service rejected delivery",
			slog.Int("status_code", resp.StatusCode),
			slog.String("user_id", sub.UserID.String()))
		return fmt.Errorf("%w: status %d", ErrDeliveryFailed, resp.StatusCode)
	}

	return nil
}
