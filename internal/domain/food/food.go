package food

import "time"

// Unit is the measurement unit a food stock is tracked in. The engine does
// no conversion between units; a feeding is recorded in the stock's own unit.
type Unit string

const (
	UnitGram       Unit = "g"
	UnitOunce      Unit = "oz"
	UnitPound      Unit = "lb"
	UnitFluidOunce Unit = "fl_oz"
	UnitGallon     Unit = "gal"
	UnitLiter      Unit = "l"
)

// IsValid reports whether u is one of the known units.
func (u Unit) IsValid() bool {
	switch u {
	case UnitGram, UnitOunce, UnitPound, UnitFluidOunce, UnitGallon, UnitLiter:
		return true
	}
	return false
}

// Food is one food stock belonging to an owner.
type Food struct {
	ID        int64
	OwnerID   int64
	Name      string
	Amount    float64
	Unit      Unit
	CreatedAt time.Time
	UpdatedAt time.Time
}
