package services

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"socketBoard/internal/canvas/presence"
	"socketBoard/internal/errs"
	redisModels "socketBoard/internal/models/redis"
)

// PresenceService keeps one expiring redis key per collaborator of a board.
type PresenceService struct {
	redis *redis.Client
	ttl   time.Duration
	now   func() time.Time
}

func NewPresenceService(redis *redis.Client, ttl time.Duration) *PresenceService {
	if ttl <= 0 {
		ttl = presence.DefaultTTL
	}
	return &PresenceService{
		redis: redis,
		ttl:   ttl,
		now:   time.Now,
	}
}

func (ps *PresenceService) TTL() time.Duration {
	return ps.ttl
}

// Touch stores p as live on the board and restarts its expiry.
func (ps *PresenceService) Touch(ctx context.Context, whiteboardID string, p presence.Presence) (presence.Presence, error) {
	if p.ID == "" {
		return presence.Presence{}, errs.ErrInvalidUserId
	}
	if p.Color == "" {
		p.Color = presence.ColorFor(p.ID)
	}
	p.LastSeen = ps.now()
	value, err := json.Marshal(p)
	if err != nil {
		return presence.Presence{}, errors.Wrap(err, "marshal presence")
	}
	key := redisModels.PresenceKey(whiteboardID, p.ID)
	if err := ps.redis.Set(ctx, key, value, ps.ttl).Err(); err != nil {
		return presence.Presence{}, errors.Wrapf(err, "set %s", key)
	}
	return p, nil
}

func (ps *PresenceService) Leave(ctx context.Context, whiteboardID, userID string) error {
	key := redisModels.PresenceKey(whiteboardID, userID)
	if err := ps.redis.Del(ctx, key).Err(); err != nil {
		return errors.Wrapf(err, "del %s", key)
	}
	return nil
}

// List returns the collaborators whose keys have not expired, ordered by
// name then id.
func (ps *PresenceService) List(ctx context.Context, whiteboardID string) ([]presence.Presence, error) {
	var keys []string
	iter := ps.redis.Scan(ctx, 0, redisModels.PresencePattern(whiteboardID), 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(err, "scan presence")
	}
	out := make([]presence.Presence, 0, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	values, err := ps.redis.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "mget presence")
	}
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			// expired between SCAN and MGET
			continue
		}
		var p presence.Presence
		if err := json.Unmarshal([]byte(s), &p); err != nil {
			log.Printf("[PresenceService] bad presence at %s: %v", keys[i], err)
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
