package chat

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// LastSeenStore tracks when a user was last online, feeding the lastSeen
// field of user_online broadcasts. Best-effort: failures are logged.
type LastSeenStore interface {
	Touch(userID uint)
	Get(userID uint) (time.Time, bool)
}

type redisLastSeen struct {
	rdb *redis.Client
}

func NewRedisLastSeen(rdb *redis.Client) LastSeenStore {
	return &redisLastSeen{rdb: rdb}
}

func lastSeenKey(userID uint) string {
	return fmt.Sprintf("last_seen:%d", userID)
}

func (s *redisLastSeen) Touch(userID uint) {
	err := s.rdb.Set(context.Background(), lastSeenKey(userID), time.Now().Unix(), 0).Err()
	if err != nil {
		log.Printf("chat: last-seen write for user %d failed: %v", userID, err)
	}
}

func (s *redisLastSeen) Get(userID uint) (time.Time, bool) {
	unix, err := s.rdb.Get(context.Background(), lastSeenKey(userID)).Int64()
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(unix, 0), true
}
