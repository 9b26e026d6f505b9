package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Traslados-api/internal/application/ports"
)

// HeaderIdempotencyKey clave de idempotencia enviada por el caller en las
// recepciones; combinada con la ruta forma la clave (traslado/orden + clave).
const HeaderIdempotencyKey = "Idempotency-Key"

// IdempotencyGuard protege los endpoints de recepción contra reintentos: un
// request repetido con la misma clave se corta en 409 antes de entrar al
// motor. Con store nil el guard es un no-op (la barrera de estado terminal
// dentro de la transacción sigue vigente).
type IdempotencyGuard struct {
	store ports.IdempotencyStore
	ttl   time.Duration
}

// NewIdempotencyGuard construye el guard; ttl define cuánto vive una clave usada.
func NewIdempotencyGuard(store ports.IdempotencyStore, ttl time.Duration) *IdempotencyGuard {
	return &IdempotencyGuard{store: store, ttl: ttl}
}

// Claim reserva la clave del request. Devuelve la clave reservada ("" si no
// aplica) y false si el request es un duplicado.
func (g *IdempotencyGuard) Claim(c *fiber.Ctx) (string, bool, error) {
	if g == nil || g.store == nil {
		return "", true, nil
	}
	key := c.Get(HeaderIdempotencyKey)
	if key == "" {
		return "", true, nil
	}
	full := c.Path() + ":" + key
	ok, err := g.store.Claim(c.Context(), full, g.ttl)
	if err != nil {
		return "", false, err
	}
	return full, ok, nil
}

// Release libera una clave reservada cuando la operación falló: el caller
// puede corregir y reintentar con la misma clave.
func (g *IdempotencyGuard) Release(c *fiber.Ctx, key string) {
	if g == nil || g.store == nil || key == "" {
		return
	}
	_ = g.store.Release(c.Context(), key)
}
