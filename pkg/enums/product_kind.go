package enums

import "fmt"

// ProductKind identifies which concrete product table a reference points at.
type ProductKind string

const (
	ProductKindNotebook   ProductKind = "notebook"
	ProductKindSmartphone ProductKind = "smartphone"
)

var validProductKinds = []ProductKind{
	ProductKindNotebook,
	ProductKindSmartphone,
}

// AllProductKinds returns every known ProductKind in declaration order.
func AllProductKinds() []ProductKind {
	kinds := make([]ProductKind, len(validProductKinds))
	copy(kinds, validProductKinds)
	return kinds
}

// String implements fmt.Stringer.
func (k ProductKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known ProductKind.
func (k ProductKind) IsValid() bool {
	for _, candidate := range validProductKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseProductKind converts raw input into a ProductKind.
func ParseProductKind(value string) (ProductKind, error) {
	for _, candidate := range validProductKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product kind %q", value)
}
