package domain

// LocationKind distingue bodega central de local de venta.
type LocationKind string

const (
	LocationWarehouse LocationKind = "warehouse" // bodega central
	LocationStore     LocationKind = "store"     // local / punto de venta
)

// Location ubicación física de stock. Para Kind=store, StoreID identifica el
// local concreto (traslados local-a-local); para Kind=warehouse queda vacío.
type Location struct {
	Kind    LocationKind `json:"kind"`
	StoreID string       `json:"store_id,omitempty"`
}

// Warehouse devuelve la ubicación bodega.
func Warehouse() Location { return Location{Kind: LocationWarehouse} }

// Store devuelve la ubicación de un local concreto.
func Store(storeID string) Location { return Location{Kind: LocationStore, StoreID: storeID} }

// Valid verifica que el kind sea conocido y que StoreID solo acompañe a store.
func (l Location) Valid() bool {
	switch l.Kind {
	case LocationWarehouse:
		return l.StoreID == ""
	case LocationStore:
		return true
	default:
		return false
	}
}

// Equal compara ubicaciones por kind y local.
func (l Location) Equal(other Location) bool {
	return l.Kind == other.Kind && l.StoreID == other.StoreID
}

// String representación legible para errores y auditoría.
func (l Location) String() string {
	if l.Kind == LocationStore && l.StoreID != "" {
		return string(l.Kind) + ":" + l.StoreID
	}
	return string(l.Kind)
}
