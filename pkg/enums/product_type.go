package enums

import "fmt"

// ProductType mirrors the commerce platform's product taxonomy.
type ProductType string

const (
	ProductTypeSimple    ProductType = "simple"
	ProductTypeVariable  ProductType = "variable"
	ProductTypeVariation ProductType = "variation"
)

var validProductTypes = []ProductType{
	ProductTypeSimple,
	ProductTypeVariable,
	ProductTypeVariation,
}

// String implements fmt.Stringer.
func (p ProductType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductType.
func (p ProductType) IsValid() bool {
	for _, candidate := range validProductTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductType converts raw input into a ProductType.
func ParseProductType(value string) (ProductType, error) {
	for _, candidate := range validProductTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product type %q", value)
}
