package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/jhoicas/Traslados-api/internal/application/ports"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore reserva claves de idempotencia en Redis con SETNX + TTL.
// Un reintento de recepción con la misma Idempotency-Key no vuelve a entrar al
// motor; el TTL limpia las claves sin mantenimiento.
type IdempotencyStore struct {
	client *redis.Client
	prefix string
}

// NewIdempotencyStore construye el store sobre un cliente Redis.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client, prefix: "idem:"}
}

// Claim intenta reservar la clave por ttl; false si ya estaba reservada.
func (s *IdempotencyStore) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.prefix+key, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim idempotency key: %w", err)
	}
	return ok, nil
}

// Release libera la clave para que un request rechazado por validación pueda
// reintentarse con la misma clave.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("release idempotency key: %w", err)
	}
	return nil
}
