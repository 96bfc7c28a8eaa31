package parse

import (
	"strconv"
	"strings"
)

// FormatIngredients converts the model's heterogeneous ingredient entries into
// canonical display lines, one per entry, preserving order. Structured entries
// render as "• [quantity] [unit] item[ (notes)]", plain strings as "• text".
// Entries of any other shape are dropped silently.
func FormatIngredients(entries []any) []string {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		switch v := entry.(type) {
		case map[string]any:
			lines = append(lines, formatStructuredIngredient(v))
		case string:
			lines = append(lines, "• "+strings.TrimSpace(v))
		}
	}
	return lines
}

func formatStructuredIngredient(entry map[string]any) string {
	item := strings.TrimSpace(stringField(entry, "item"))
	unit := strings.TrimSpace(stringField(entry, "unit"))
	notes := strings.TrimSpace(stringField(entry, "notes"))

	var qtyParts []string
	if qty, ok := quantityString(entry["quantity"]); ok {
		qtyParts = append(qtyParts, qty)
	}
	if unit != "" {
		qtyParts = append(qtyParts, unit)
	}

	line := "•"
	if qtyStr := strings.Join(qtyParts, " "); qtyStr != "" {
		line += " " + qtyStr
	}
	if item != "" {
		line += " " + item
	}
	if notes != "" {
		line += " (" + notes + ")"
	}
	return line
}

// quantityString renders a quantity value for display. Whole numbers lose
// their fractional part; numeric strings are normalized the same way; any
// other non-empty value is rendered literally.
func quantityString(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case float64:
		return formatNumber(v), true
	case string:
		if v == "" {
			return "", false
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return formatNumber(f), true
		}
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

func stringField(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}
