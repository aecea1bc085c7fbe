package notification

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"conduct/internal/notification/models"
	id "conduct/pkg/domain"
)

const (
	// Redis key prefix for per-user unread counters
	unreadCountKeyPrefix = "notif:unread:"

	defaultUnreadCountTTL = 30 * time.Second
)

// Store is the persistence surface the cache decorates.
type Store interface {
	Create(ctx context.Context, notif *models.Notification) error
	ListForUser(ctx context.Context, userID id.UserID, limit int) ([]*models.Notification, error)
	ListUnread(ctx context.Context, userID id.UserID) ([]*models.Notification, error)
	CountUnread(ctx context.Context, userID id.UserID) (int, error)
	MarkRead(ctx context.Context, userID id.UserID, notifID id.NotificationID) error
}

// CachedStore decorates a Store with a Redis-backed unread counter. The badge
// count is the hottest read in the UI; everything else passes through. Writes
// invalidate the affected recipient's key so the counter is stale for at most
// the TTL after an out-of-band change.
type CachedStore struct {
	inner  Store
	client *redis.Client
	ttl    time.Duration
}

type CacheOption func(*CachedStore)

// WithUnreadCountTTL overrides the cache lifetime of the unread counter.
func WithUnreadCountTTL(ttl time.Duration) CacheOption {
	return func(c *CachedStore) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// NewCached wraps inner with a Redis unread-count cache.
func NewCached(inner Store, client *redis.Client, opts ...CacheOption) *CachedStore {
	c := &CachedStore{inner: inner, client: client, ttl: defaultUnreadCountTTL}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *CachedStore) Create(ctx context.Context, notif *models.Notification) error {
	if err := c.inner.Create(ctx, notif); err != nil {
		return err
	}
	c.invalidate(ctx, notif.UserID)
	return nil
}

func (c *CachedStore) ListForUser(ctx context.Context, userID id.UserID, limit int) ([]*models.Notification, error) {
	return c.inner.ListForUser(ctx, userID, limit)
}

func (c *CachedStore) ListUnread(ctx context.Context, userID id.UserID) ([]*models.Notification, error) {
	return c.inner.ListUnread(ctx, userID)
}

func (c *CachedStore) CountUnread(ctx context.Context, userID id.UserID) (int, error) {
	key := unreadCountKeyPrefix + userID.String()

	cached, err := c.client.Get(ctx, key).Result()
	if err == nil {
		if count, convErr := strconv.Atoi(cached); convErr == nil {
			return count, nil
		}
	}

	count, err := c.inner.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}
	// Cache failures must not fail the read; the next call recounts.
	_ = c.client.Set(ctx, key, strconv.Itoa(count), c.ttl).Err()
	return count, nil
}

func (c *CachedStore) MarkRead(ctx context.Context, userID id.UserID, notifID id.NotificationID) error {
	if err := c.inner.MarkRead(ctx, userID, notifID); err != nil {
		return err
	}
	c.invalidate(ctx, userID)
	return nil
}

func (c *CachedStore) invalidate(ctx context.Context, userID id.UserID) {
	_ = c.client.Del(ctx, unreadCountKeyPrefix+userID.String()).Err()
}
