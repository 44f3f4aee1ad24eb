package config

import (
	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/blockforge/storagecore/internal/units"
)

// Quantity is a size-valued config field parsed the way the teacher
// parses every CSI capacity range: through
// k8s.io/apimachinery/pkg/api/resource.Quantity, which viper/mapstructure
// already knows how to decode via UnmarshalText. Size converts the
// parsed value into the byte-accurate units.Size the rest of
// storagecore is built on.
type Quantity resource.Quantity

// UnmarshalText implements encoding.TextUnmarshaler, matching
// internal/driver/allocation_settings.go's Quantity exactly.
func (q *Quantity) UnmarshalText(data []byte) error {
	parsed, err := resource.ParseQuantity(string(data))
	if err != nil {
		return err
	}
	*q = Quantity(parsed)
	return nil
}

// Size converts the quantity to a units.Size, matching the rounding
// resource.Quantity.Value() itself uses.
func (q Quantity) Size() units.Size {
	rq := resource.Quantity(q)
	return units.NewSize(rq.Value())
}
