package stock

// Unit is a measurement unit attached to an ingredient amount.
type Unit string

// UnitNotApplicable marks ingredients with no meaningful amount, such as salt.
const UnitNotApplicable Unit = "N/A"

// DefaultUnit is the unit preselected for a new entry.
const DefaultUnit Unit = "Unité(s)"

// Units is the fixed list of units a caller may attach to an ingredient.
var Units = []Unit{
	DefaultUnit,
	"g",
	"kg",
	"ml",
	"cl",
	"L",
	"CàS",
	"CàC",
	"Pincée",
	UnitNotApplicable,
}

// Valid reports whether u is one of Units.
func (u Unit) Valid() bool {
	for _, known := range Units {
		if u == known {
			return true
		}
	}
	return false
}
