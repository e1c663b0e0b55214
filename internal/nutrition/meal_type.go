package nutrition

import (
	"fmt"
	"strings"
)

// MealType is a logging slot within a day.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snacks    MealType = "snacks"
)

// MealTypes lists the slots in display order.
var MealTypes = []MealType{Breakfast, Lunch, Dinner, Snacks}

// ServingUnits are the accepted serving size units.
var ServingUnits = []string{"g", "ml", "oz", "cup"}

// ParseMealType normalizes and validates a meal slot name.
func ParseMealType(s string) (MealType, error) {
	mt := MealType(strings.ToLower(strings.TrimSpace(s)))
	if !mt.Valid() {
		return "", fmt.Errorf("unknown meal type: %s (use breakfast, lunch, dinner or snacks)", s)
	}
	return mt, nil
}

// Valid reports whether mt is one of the known slots.
func (mt MealType) Valid() bool {
	for _, known := range MealTypes {
		if mt == known {
			return true
		}
	}
	return false
}

// IsValidServingUnit reports whether unit is an accepted serving unit.
func IsValidServingUnit(unit string) bool {
	for _, u := range ServingUnits {
		if unit == u {
			return true
		}
	}
	return false
}
