package ports

import (
	"context"
	"time"
)

// IdempotencyStore reserva claves de idempotencia para las recepciones
// (traslado u orden + clave enviada por el caller). Un reintento con la misma
// clave no reserva de nuevo y el caller recibe el aviso de duplicado antes de
// tocar el motor; el chequeo de estado terminal dentro de la transacción sigue
// siendo la garantía dura.
type IdempotencyStore interface {
	// Claim intenta reservar la clave por ttl. Devuelve false si ya estaba
	// reservada (request duplicado).
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release libera la clave, para que un request que falló por validación
	// pueda reintentarse con la misma clave.
	Release(ctx context.Context, key string) error
}
