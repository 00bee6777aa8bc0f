package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shopify-summary-sync/internal/domain"
	"shopify-summary-sync/internal/ports"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	queueKey      = "product-processing"
	deadLetterKey = "product-processing:dead"
	dedupPrefix   = "queue:dedup:"
	dedupTTL      = 24 * time.Hour
	maxAttempts   = 3
	popTimeout    = 5 * time.Second
)

// RedisTaskQueue is a durable FIFO task queue on a Redis list, with job-id
// deduplication and a dead-letter list for tasks that exhaust their retries.
type RedisTaskQueue struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisTaskQueue creates a queue on the given Redis client.
func NewRedisTaskQueue(client *redis.Client, logger zerolog.Logger) ports.TaskQueue {
	return &RedisTaskQueue{client: client, logger: logger}
}

// Enqueue pushes a task unless the same job id was already enqueued within
// the dedup window.
func (q *RedisTaskQueue) Enqueue(ctx context.Context, task *domain.SyncTask) error {
	ok, err := q.client.SetNX(ctx, dedupPrefix+task.JobID, "1", dedupTTL).Result()
	if err != nil {
		return fmt.Errorf("failed to check task dedup: %w", err)
	}
	if !ok {
		q.logger.Info().
			Str("job_id", task.JobID).
			Str("shop", task.ShopURL).
			Msg("Task already enqueued, skipping")
		return nil
	}

	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}
	if err := q.client.LPush(ctx, queueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	q.logger.Info().
		Str("job_id", task.JobID).
		Str("shop", task.ShopURL).
		Msg("Enqueued sync task")
	return nil
}

// Consume blocks on the queue and runs tasks one at a time until the context
// is cancelled. A failed task is retried with exponential backoff; after
// maxAttempts it moves to the dead-letter list.
func (q *RedisTaskQueue) Consume(ctx context.Context, handler ports.SyncTaskHandler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result, err := q.client.BRPop(ctx, popTimeout, queueKey).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			q.logger.Error().Err(err).Msg("Failed to pop task, backing off")
			time.Sleep(time.Second)
			continue
		}

		// BRPop returns [key, value]
		var task domain.SyncTask
		if err := json.Unmarshal([]byte(result[1]), &task); err != nil {
			q.logger.Error().Err(err).Msg("Discarding malformed task payload")
			continue
		}
		if task.Attempt == 0 {
			task.Attempt = 1
		}

		q.logger.Info().
			Str("job_id", task.JobID).
			Str("shop", task.ShopURL).
			Int("attempt", task.Attempt).
			Msg("Processing sync task")

		if err := handler(ctx, &task); err != nil {
			q.retry(ctx, &task, err)
		}
	}
}

func (q *RedisTaskQueue) retry(ctx context.Context, task *domain.SyncTask, cause error) {
	if task.Attempt >= maxAttempts {
		payload, _ := json.Marshal(task)
		if err := q.client.LPush(ctx, deadLetterKey, payload).Err(); err != nil {
			q.logger.Error().Err(err).
				Str("job_id", task.JobID).
				Msg("Failed to move task to dead letter list")
			return
		}
		q.logger.Error().Err(cause).
			Str("job_id", task.JobID).
			Int("attempt", task.Attempt).
			Msg("Task exhausted retries, moved to dead letter list")
		return
	}

	delay := backoffDelay(task.Attempt)
	q.logger.Warn().Err(cause).
		Str("job_id", task.JobID).
		Int("attempt", task.Attempt).
		Dur("delay", delay).
		Msg("Task failed, retrying")

	task.Attempt++
	payload, _ := json.Marshal(task)

	select {
	case <-ctx.Done():
		return
	case <-time.After(delay):
	}
	if err := q.client.LPush(ctx, queueKey, payload).Err(); err != nil {
		q.logger.Error().Err(err).
			Str("job_id", task.JobID).
			Msg("Failed to requeue task")
	}
}

// backoffDelay doubles per attempt: 2s, 4s, 8s, ...
func backoffDelay(attempt int) time.Duration {
	return 2 * time.Second << (attempt - 1)
}
