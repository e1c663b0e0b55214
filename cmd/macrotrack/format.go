package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/pageza/macrotrack/backend/internal/nutrition"
)

// resolveDate validates a YYYY-MM-DD flag value, defaulting to today
func resolveDate(value string) (string, error) {
	if value == "" {
		return now().Format(nutrition.DateLayout), nil
	}
	if !nutrition.IsValidDate(value) {
		return "", fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", value)
	}
	return value, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatKcal(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64) + " kcal"
}

func formatMacros(t nutrition.DailyTotals) string {
	return fmt.Sprintf("P %sg  C %sg  F %sg",
		strconv.FormatFloat(t.Protein, 'f', 1, 64),
		strconv.FormatFloat(t.Carbs, 'f', 1, 64),
		strconv.FormatFloat(t.Fat, 'f', 1, 64))
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func padLeft(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return strings.Repeat(" ", length-len(s)) + s
}
