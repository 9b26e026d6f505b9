package entity

import "time"

// Store local de venta registrado. El registro de locales es un colaborador
// externo de solo lectura; aquí se consulta para validar traslados local-a-local.
type Store struct {
	ID        string
	Name      string
	Address   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
