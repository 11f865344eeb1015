package entity

// Unidades de medida aceitas (enum und_medida).
const (
	UnitMeters = "mts"
	UnitBar    = "br"
	UnitPiece  = "un"
)

// ValidUnit indica se u é uma unidade de medida conhecida.
func ValidUnit(u string) bool {
	switch u {
	case UnitMeters, UnitBar, UnitPiece:
		return true
	}
	return false
}
