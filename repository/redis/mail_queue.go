package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/blog/internal/mail"
	"github.com/fastygo/blog/repository"
)

type mailQueue struct {
	client  *redislib.Client
	key     string
	deadKey string
}

// NewMailQueue creates a Redis list backed outbox. Producers LPUSH and workers BRPOP so
// messages are delivered in arrival order.
func NewMailQueue(client *redislib.Client, key string) repository.MailQueue {
	if key == "" {
		key = "mail:outbox"
	}
	return &mailQueue{
		client:  client,
		key:     key,
		deadKey: key + ":dead",
	}
}

func (q *mailQueue) Push(ctx context.Context, msg mail.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, q.key, payload).Err()
}

func (q *mailQueue) Pop(ctx context.Context, timeout time.Duration) (*mail.Message, error) {
	result, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, nil
		}
		return nil, err
	}
	// result holds the key followed by the value.
	if len(result) != 2 {
		return nil, nil
	}

	var msg mail.Message
	if err := json.Unmarshal([]byte(result[1]), &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (q *mailQueue) Bury(ctx context.Context, msg mail.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, q.deadKey, payload).Err()
}

func (q *mailQueue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.key).Result()
}
