package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Traslados-api/internal/domain"
)

func TestLocationValid(t *testing.T) {
	assert.True(t, domain.Warehouse().Valid())
	assert.True(t, domain.Store("s1").Valid())
	assert.True(t, domain.Location{Kind: domain.LocationStore}.Valid(),
		"store sin ID es válido como ubicación genérica de local")

	assert.False(t, domain.Location{}.Valid(), "kind vacío no es válido")
	assert.False(t, domain.Location{Kind: "truck"}.Valid())
	assert.False(t, domain.Location{Kind: domain.LocationWarehouse, StoreID: "s1"}.Valid(),
		"warehouse no lleva store_id")
}

func TestLocationEqual(t *testing.T) {
	assert.True(t, domain.Warehouse().Equal(domain.Warehouse()))
	assert.True(t, domain.Store("s1").Equal(domain.Store("s1")))
	assert.False(t, domain.Store("s1").Equal(domain.Store("s2")))
	assert.False(t, domain.Warehouse().Equal(domain.Store("s1")))
}

func TestLocationString(t *testing.T) {
	assert.Equal(t, "warehouse", domain.Warehouse().String())
	assert.Equal(t, "store:s1", domain.Store("s1").String())
}
