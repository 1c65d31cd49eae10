package fuel

import "strings"

// Type identifies a marine fuel. Lookups are case-insensitive.
type Type string

const (
	TypeHFO      Type = "HFO"
	TypeMGO      Type = "MGO"
	TypeLNG      Type = "LNG"
	TypeMethanol Type = "METHANOL"
)

// ParseType normalizes a fuel type name.
// Whether the type is supported is decided by the FactorTable, not here.
func ParseType(s string) (Type, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	if normalized == "" {
		return "", false
	}
	return Type(normalized), true
}

func (t Type) String() string {
	return string(t)
}
