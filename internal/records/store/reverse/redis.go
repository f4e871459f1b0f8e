package reverse

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"nameledger/internal/naming"
	"nameledger/pkg/platform/sentinel"
)

// Redis is the go-redis backed reverse store. The index is a plain key-value
// mapping so Redis fits it directly; keys are namespaced under "reverse:".
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func reverseKey(addr naming.Address) string {
	return "reverse:" + addr.String()
}

func (s *Redis) Get(ctx context.Context, addr naming.Address) (naming.Name, error) {
	val, err := s.client.Get(ctx, reverseKey(addr)).Result()
	if errors.Is(err, redis.Nil) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get reverse entry: %w", err)
	}
	return naming.Name(val), nil
}

func (s *Redis) Put(ctx context.Context, addr naming.Address, name naming.Name) error {
	if err := s.client.Set(ctx, reverseKey(addr), string(name), 0).Err(); err != nil {
		return fmt.Errorf("set reverse entry: %w", err)
	}
	return nil
}

func (s *Redis) Delete(ctx context.Context, addr naming.Address) error {
	if err := s.client.Del(ctx, reverseKey(addr)).Err(); err != nil {
		return fmt.Errorf("delete reverse entry: %w", err)
	}
	return nil
}
