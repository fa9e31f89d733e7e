package utils

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// The shuffle limit is mirrored outside the response row so a transient
// read failure of the authoritative counter cannot grant unlimited
// shuffles. Redis is preferred; in-memory is the single-instance
// fallback. Callers merge the two sources by taking the maximum.

type shuffleEntry struct {
	count     int
	expiresAt time.Time
}

var (
	shuffleStore   = map[string]shuffleEntry{}
	shuffleStoreMu sync.Mutex
)

func shuffleKey(userID, date string) string {
	return fmt.Sprintf("shuffle:%s:%s", userID, date)
}

// ShuffleCount returns the mirrored shuffle count for (user, day).
func ShuffleCount(userID, date string) int {
	key := shuffleKey(userID, date)
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if v, err := rc.Get(ctx, key).Result(); err == nil {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
	}
	shuffleStoreMu.Lock()
	defer shuffleStoreMu.Unlock()
	entry, ok := shuffleStore[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return 0
	}
	return entry.count
}

// RecordShuffle bumps the mirrored counter for (user, day). Entries
// expire after two days; by then the day key has rolled over anyway.
func RecordShuffle(userID, date string) {
	key := shuffleKey(userID, date)
	ttl := 48 * time.Hour
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		pipe := rc.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, ttl)
		if _, err := pipe.Exec(ctx); err == nil && incr.Err() == nil {
			return
		}
	}
	shuffleStoreMu.Lock()
	defer shuffleStoreMu.Unlock()
	entry := shuffleStore[key]
	if time.Now().After(entry.expiresAt) {
		entry.count = 0
	}
	entry.count++
	entry.expiresAt = time.Now().Add(ttl)
	shuffleStore[key] = entry
}

// MergedShuffleCount reconciles the authoritative count (from the
// response row, -1 when unreadable) with the mirror, taking the
// maximum of the two.
func MergedShuffleCount(authoritative int, userID, date string) int {
	mirrored := ShuffleCount(userID, date)
	if authoritative > mirrored {
		return authoritative
	}
	return mirrored
}
