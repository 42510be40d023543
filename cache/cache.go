package cache

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	publicMenuKey = "menu:public"
	pausedKey     = "system:paused"
)

// MenuCache keeps the rendered public menu and the system pause flag in Redis.
// A nil *MenuCache (Redis not configured) is valid; every method degrades to a
// miss or an in-process fallback.
type MenuCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewMenuCache(client *redis.Client, ttl time.Duration) *MenuCache {
	if client == nil {
		return nil
	}
	return &MenuCache{Client: client, TTL: ttl}
}

func (c *MenuCache) GetPublicMenu(ctx context.Context) (string, bool) {
	if c == nil || c.Client == nil {
		return "", false
	}
	val, err := c.Client.Get(ctx, publicMenuKey).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *MenuCache) SetPublicMenu(ctx context.Context, payload string) {
	if c == nil || c.Client == nil {
		return
	}
	c.Client.Set(ctx, publicMenuKey, payload, c.TTL)
}

// InvalidatePublicMenu is called after every admin menu mutation.
func (c *MenuCache) InvalidatePublicMenu(ctx context.Context) {
	if c == nil || c.Client == nil {
		return
	}
	c.Client.Del(ctx, publicMenuKey)
}

// PauseState stores the coarse pause switch. Held in Redis so it survives a
// restart when Redis is configured; in-process otherwise. The in-process flag
// is read by the sweeper goroutine while the HTTP handlers write it, so it is
// mutex-guarded.
type PauseState struct {
	Client *redis.Client

	mu     sync.Mutex
	paused bool
}

func NewPauseState(client *redis.Client) *PauseState {
	return &PauseState{Client: client}
}

func (p *PauseState) SetPaused(ctx context.Context, paused bool) error {
	if p.Client == nil {
		p.mu.Lock()
		p.paused = paused
		p.mu.Unlock()
		return nil
	}
	if paused {
		return p.Client.Set(ctx, pausedKey, "1", 0).Err()
	}
	return p.Client.Del(ctx, pausedKey).Err()
}

func (p *PauseState) Paused(ctx context.Context) bool {
	if p.Client == nil {
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.paused
	}
	n, err := p.Client.Exists(ctx, pausedKey).Result()
	if err != nil {
		return false
	}
	return n > 0
}
