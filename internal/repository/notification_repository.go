package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const notificationKeyPrefix = "notifications:"

// Notification is a transient status-change notice surfaced to admins.
// Entries expire on their own; nothing is ever delivered or persisted.
type Notification struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticketId"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// NotificationStore holds short-lived notifications.
type NotificationStore interface {
	Add(ctx context.Context, notification Notification, ttl time.Duration) error
	ListLive(ctx context.Context) ([]Notification, error)
}

type redisNotificationStore struct {
	client *redis.Client
}

// NewNotificationStore returns a Redis-backed store. Expiry is delegated to
// Redis key TTLs, so ListLive only ever sees entries still inside their
// display window.
func NewNotificationStore(client *redis.Client) NotificationStore {
	return &redisNotificationStore{client: client}
}

func (s *redisNotificationStore) Add(ctx context.Context, notification Notification, ttl time.Duration) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, notificationKeyPrefix+notification.ID, payload, ttl).Err()
}

func (s *redisNotificationStore) ListLive(ctx context.Context) ([]Notification, error) {
	var (
		cursor uint64
		keys   []string
	)
	for {
		batch, next, err := s.client.Scan(ctx, cursor, notificationKeyPrefix+"*", 100).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			break
		}
	}

	result := make([]Notification, 0, len(keys))
	for _, key := range keys {
		payload, err := s.client.Get(ctx, key).Bytes()
		if err == redis.Nil {
			// expired between scan and get
			continue
		}
		if err != nil {
			return nil, err
		}
		var notification Notification
		if err := json.Unmarshal(payload, &notification); err != nil {
			continue
		}
		result = append(result, notification)
	}
	return result, nil
}
