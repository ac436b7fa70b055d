package roster

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisKey = "discussum:roster"

// RedisSource reads the roster from a Redis set on every call, so edits to
// the set take effect on the next request.
type RedisSource struct {
	client *redis.Client
	key    string
}

func NewRedisSource(client *redis.Client, key string) *RedisSource {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisSource{client: client, key: key}
}

func (s *RedisSource) Roster(ctx context.Context) (*Roster, error) {
	names, err := s.client.SMembers(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis roster %s: %w", s.key, err)
	}
	return New(names), nil
}

// Replace swaps the stored set for r in a single transaction.
func (s *RedisSource) Replace(ctx context.Context, r *Roster) error {
	names := r.Names()
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		if len(names) > 0 {
			members := make([]interface{}, len(names))
			for i, n := range names {
				members[i] = n
			}
			pipe.SAdd(ctx, s.key, members...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace redis roster %s: %w", s.key, err)
	}
	return nil
}
