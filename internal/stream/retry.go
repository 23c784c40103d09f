package stream

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RetryHandler retries a stream message's processing with exponential
// backoff, and pushes it to a dead-letter list once retries are exhausted.
type RetryHandler struct {
	client        *redis.Client
	deadLetterKey string
	maxAttempts   int
	baseBackoff   time.Duration
}

func NewRetryHandler(client *redis.Client, deadLetterKey string) *RetryHandler {
	return &RetryHandler{
		client:        client,
		deadLetterKey: deadLetterKey,
		maxAttempts:   3,
		baseBackoff:   500 * time.Millisecond,
	}
}

// RetryWithBackoff calls fn up to maxAttempts times, waiting baseBackoff
// before the second try and doubling the wait before each later one. If
// every attempt fails, the
// message's fields are pushed to the dead-letter list and the last error
// is returned.
func (h *RetryHandler) RetryWithBackoff(ctx context.Context, fn func() error, messageID string, fields map[string]interface{}) error {
	var lastErr error

	for attempt := 0; attempt < h.maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := h.baseBackoff << uint(attempt-1)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		log.Warn().
			Err(lastErr).
			Str("message_id", messageID).
			Int("attempt", attempt+1).
			Int("max_attempts", h.maxAttempts).
			Msg("stream message processing attempt failed")
	}

	if err := h.sendToDeadLetter(ctx, messageID, fields, lastErr); err != nil {
		log.Error().Err(err).Str("message_id", messageID).Msg("failed to push message to dead-letter list")
	}

	return lastErr
}

func (h *RetryHandler) sendToDeadLetter(ctx context.Context, messageID string, fields map[string]interface{}, cause error) error {
	entry := map[string]interface{}{
		"messageId": messageID,
		"error":     cause.Error(),
		"failedAt":  time.Now().Format(time.RFC3339),
		"fields":    fields,
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return h.client.LPush(ctx, h.deadLetterKey, payload).Err()
}
