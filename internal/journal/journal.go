// Package journal publishes per-room action records to a Redis queue for
// out-of-process consumers (replay tooling, debugging). The engine itself
// keeps no history; when Redis is not configured the publisher is simply nil
// and every record is dropped.
package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultQueueName is the Redis list the records are pushed onto.
const DefaultQueueName = "cabo_actions"

// Record holds one applied action, ordered per room by ActionIndex.
type Record struct {
	RoomID      uuid.UUID              `json:"room_id"`
	ActionIndex int                    `json:"action_index"`
	ActorID     uuid.UUID              `json:"actor_id"`
	Action      string                 `json:"action"`
	Payload     map[string]interface{} `json:"payload,omitempty"`
	Timestamp   int64                  `json:"timestamp"`
}

// Publisher pushes records onto a Redis list.
type Publisher struct {
	rdb   *redis.Client
	queue string
}

// Connect dials Redis and verifies the connection. addr is host:port.
func Connect(addr string, db int, queue string) (*Publisher, error) {
	if queue == "" {
		queue = DefaultQueueName
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("journal: connect %s: %w", addr, err)
	}
	return &Publisher{rdb: rdb, queue: queue}, nil
}

// Publish serializes the record and pushes it. It uses its own short timeout
// so a slow Redis never backs up into game logic.
func (p *Publisher) Publish(rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("journal: marshal record: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := p.rdb.RPush(ctx, p.queue, data).Err(); err != nil {
		return fmt.Errorf("journal: push: %w", err)
	}
	return nil
}

// Close releases the Redis connection.
func (p *Publisher) Close() error {
	return p.rdb.Close()
}
