package worklog

import (
	"strconv"
	"strings"
)

// NormalizeUsage rewrites input rows into the persisted {name, quantity,
// unit} shape. materialName/quantityUsed win over name/quantity; a blank
// unit becomes defaultUnit. Rows with no material name are dropped.
func NormalizeUsage(rows []UsageInput, defaultUnit string) []MaterialUsage {
	if defaultUnit == "" {
		defaultUnit = DefaultUnit
	}
	out := make([]MaterialUsage, 0, len(rows))
	for _, row := range rows {
		name := strings.TrimSpace(firstNonBlank(row.MaterialName, row.Name))
		if name == "" {
			continue
		}
		quantity := strings.TrimSpace(firstNonBlank(string(row.QuantityUsed), string(row.Quantity)))
		unit := strings.TrimSpace(row.Unit)
		if unit == "" {
			unit = defaultUnit
		}
		out = append(out, MaterialUsage{Name: name, Quantity: quantity, Unit: unit})
	}
	return out
}

// ParseQuantity reads a usage quantity as a number.
func ParseQuantity(q string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(q), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// normalizeSafety stores the sentinel for a blank safety field.
func normalizeSafety(v string) string {
	if strings.TrimSpace(v) == "" {
		return NoSafetyIssue
	}
	return v
}
