package expedition

import (
	"expedition/internal/core/domain/model/kernel"
)

// VehicleChain is the fallback chain used to decide which vehicle a driver
// uses for a particular stop. Resolution is a pure first-non-nil walk:
//
//	allocation override -> line override -> expedition default ->
//	driver default -> fleet lookup
//
// Callers fill the fields they know; unknown levels stay nil.
type VehicleChain struct {
	Allocation        *kernel.UUID
	Line              *kernel.UUID
	ExpeditionDefault *kernel.UUID
	DriverDefault     *kernel.UUID
	Fleet             *kernel.UUID
}

// Resolve returns the first vehicle found walking the chain, or nil when no
// level knows a vehicle.
func (c VehicleChain) Resolve() *kernel.UUID {
	for _, candidate := range []*kernel.UUID{
		c.Allocation,
		c.Line,
		c.ExpeditionDefault,
		c.DriverDefault,
		c.Fleet,
	} {
		if candidate != nil {
			return candidate
		}
	}
	return nil
}
