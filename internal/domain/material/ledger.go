package material

// TotalValue sums currentStock * pricePerUnit over every material.
func TotalValue(materials []Material) float64 {
	total := 0.0
	for _, m := range materials {
		total += m.CurrentStock * m.PricePerUnit
	}
	return total
}

// CountByStatus counts materials whose stored status equals status.
func CountByStatus(materials []Material, status Status) int {
	n := 0
	for _, m := range materials {
		if m.Status == status {
			n++
		}
	}
	return n
}

// DeriveStatus computes a status from stock against the reorder level.
// On Order is an operator decision and is kept as is.
func DeriveStatus(m Material) Status {
	switch {
	case m.Status == StatusOnOrder:
		return StatusOnOrder
	case m.CurrentStock <= 0:
		return StatusOutOfStock
	case m.CurrentStock <= m.ReorderLevel:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// BelowReorder reports whether stock has reached the reorder level,
// independent of the stored status.
func BelowReorder(m Material) bool {
	return m.CurrentStock <= m.ReorderLevel
}

// Summarize computes ledger statistics. Status counts read the stored,
// operator-maintained status; BelowReorder is computed from stock.
func Summarize(materials []Material) Summary {
	sum := Summary{
		Total:      len(materials),
		TotalValue: TotalValue(materials),
		InStock:    CountByStatus(materials, StatusInStock),
		LowStock:   CountByStatus(materials, StatusLowStock),
		OutOfStock: CountByStatus(materials, StatusOutOfStock),
		OnOrder:    CountByStatus(materials, StatusOnOrder),
	}
	for _, m := range materials {
		if BelowReorder(m) {
			sum.BelowReorder++
		}
	}
	return sum
}
