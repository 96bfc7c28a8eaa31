package parse

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatInstruction converts one instruction step into a display line. A
// structured step renders its text followed by " (~T min | P°C)" where each
// component appears only when the source value is numeric. Non-structured
// steps are rendered verbatim. Numbering is left to the presentation layer.
func FormatInstruction(step any) string {
	m, ok := step.(map[string]any)
	if !ok {
		return fmt.Sprintf("%v", step)
	}

	text := strings.TrimSpace(stringField(m, "text"))

	var extras []string
	if minutes, ok := m["time_minutes"].(float64); ok {
		extras = append(extras, "~"+formatNumber(minutes)+" min")
	}
	if temp, ok := m["temperature_c"].(float64); ok {
		extras = append(extras, formatNumber(temp)+"°C")
	}

	if len(extras) > 0 {
		return strings.TrimSpace(text + " (" + strings.Join(extras, " | ") + ")")
	}
	return text
}

// formatNumber renders whole values without a decimal part.
func formatNumber(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
