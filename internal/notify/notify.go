package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clubpay/internal/logger"
	"clubpay/internal/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	queueKey       = "clubpay:payouts"
	failedQueueKey = "clubpay:payouts:failed"
	maxAttempts    = 3
	kindPayout     = "payout"
)

// Payout tells a trainer that a payment has been settled to their account.
type Payout struct {
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	PaymentID      int       `json:"payment_id"`
	TotalTrainings int       `json:"total_trainings"`
	AmountCents    int64     `json:"amount_cents"`
	IBAN           string    `json:"iban"`
	Tries          int       `json:"tries"`
	Created        time.Time `json:"created"`
}

// Sender delivers a rendered message.
type Sender interface {
	Send(to, subject, body string) error
}

type Queue struct {
	redis        *redis.Client
	sender       Sender
	retryDelay   time.Duration
	errorBackoff time.Duration
}

func NewQueue(rdb *redis.Client, sender Sender) *Queue {
	return &Queue{
		redis:        rdb,
		sender:       sender,
		retryDelay:   5 * time.Second,
		errorBackoff: time.Second,
	}
}

// Enqueue pushes a payout notice for the worker.
func (q *Queue) Enqueue(ctx context.Context, p Payout) error {
	p.Tries = 0
	p.Created = time.Now()

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal payout notice: %w", err)
	}

	if err := q.redis.LPush(ctx, queueKey, string(data)).Err(); err != nil {
		metrics.RecordNotification(kindPayout, "enqueue_failed")
		return fmt.Errorf("queue payout notice for %s: %w", p.Email, err)
	}

	metrics.RecordNotification(kindPayout, "queued")
	logger.Debug("payout notice queued", "payment_id", p.PaymentID, "email", p.Email)
	return nil
}

// Start consumes the queue until ctx is cancelled. The queue length gauge is
// refreshed after every poll.
func (q *Queue) Start(ctx context.Context) {
	logger.Info("payout notification worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("payout notification worker stopped")
			return
		default:
		}

		if err := q.processNext(ctx); err != nil {
			if ctx.Err() == nil {
				logger.Warn("payout queue unavailable", "error", err, "backoff", q.errorBackoff)
			}
			select {
			case <-ctx.Done():
			case <-time.After(q.errorBackoff):
			}
			continue
		}
		q.QueueLength(ctx)
	}
}

// processNext handles at most one notice. It returns an error only when
// Redis could not be polled; send failures are handled by retrying.
func (q *Queue) processNext(ctx context.Context) error {
	result, err := q.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("poll payout queue: %w", err)
	}

	var p Payout
	if err := json.Unmarshal([]byte(result[1]), &p); err != nil {
		logger.Error("bad payout notice", "error", err)
		return nil
	}

	p.Tries++
	subject, body := render(p)
	if err := q.sender.Send(p.Email, subject, body); err != nil {
		logger.Error("payout notice failed", "email", p.Email, "attempt", p.Tries, "error", err)

		if p.Tries < maxAttempts {
			q.requeue(ctx, p)
		} else {
			q.saveFailed(ctx, p, err)
		}
		return nil
	}

	metrics.RecordNotification(kindPayout, "sent")
	logger.Info("payout notice sent", "payment_id", p.PaymentID, "email", p.Email)
	return nil
}

func (q *Queue) requeue(ctx context.Context, p Payout) {
	select {
	case <-ctx.Done():
	case <-time.After(q.retryDelay):
	}

	data, _ := json.Marshal(p)
	if err := q.redis.LPush(context.WithoutCancel(ctx), queueKey, string(data)).Err(); err != nil {
		logger.Error("payout notice requeue failed", "email", p.Email, "error", err)
		return
	}
	metrics.RecordNotification(kindPayout, "retried")
}

func (q *Queue) saveFailed(ctx context.Context, p Payout, cause error) {
	failed := map[string]interface{}{
		"notice": p,
		"error":  cause.Error(),
		"time":   time.Now(),
	}
	data, _ := json.Marshal(failed)
	q.redis.LPush(context.WithoutCancel(ctx), failedQueueKey, string(data))

	metrics.RecordNotification(kindPayout, "failed")
	logger.Error("payout notice moved to failed queue", "email", p.Email, "attempts", p.Tries)
}

// QueueLength reports pending notices and updates the gauge.
func (q *Queue) QueueLength(ctx context.Context) int64 {
	length, err := q.redis.LLen(ctx, queueKey).Result()
	if err != nil {
		return 0
	}
	metrics.NotificationQueueLength.Set(float64(length))
	return length
}

func (q *Queue) Close() error {
	return q.redis.Close()
}

func render(p Payout) (string, string) {
	subject := fmt.Sprintf("Payment #%d settled", p.PaymentID)
	body := fmt.Sprintf(`Hi %s,

your compensation for %d training(s) has been settled.

Amount: %s
Account: %s

Thank you for your work!`, p.Name, p.TotalTrainings, formatCents(p.AmountCents), maskIBAN(p.IBAN))
	return subject, body
}

func formatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d EUR", cents/100, cents%100)
}

// maskIBAN keeps the country code and the last four characters.
func maskIBAN(iban string) string {
	if len(iban) <= 6 {
		return iban
	}
	masked := []byte(iban)
	for i := 2; i < len(masked)-4; i++ {
		masked[i] = '*'
	}
	return string(masked)
}
