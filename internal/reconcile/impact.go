package reconcile

import (
	"math"
	"sort"

	"github.com/rpggio/siteledger/internal/domain/material"
	"github.com/rpggio/siteledger/internal/domain/worklog"
)

// Impact compares recorded usage of one material with its ledger line.
// Matched is false when no ledger material has the usage's name; the stock
// fields are then zero.
type Impact struct {
	Material       string  `json:"material"`
	Unit           string  `json:"unit"`
	Consumed       float64 `json:"consumed"`
	UnparsedRows   int     `json:"unparsedRows,omitempty"`
	Matched        bool    `json:"matched"`
	CurrentStock   float64 `json:"currentStock"`
	ProjectedStock float64 `json:"projectedStock"`
	ReorderLevel   float64 `json:"reorderLevel"`
	BelowReorder   bool    `json:"belowReorder"`
}

// MaterialImpact sums usage per material across logs and projects it onto
// the ledger without changing it. Results are sorted by material name.
func MaterialImpact(logs []worklog.WorkLog, materials []material.Material) []Impact {
	ledger := make(map[string]material.Material, len(materials))
	for _, m := range materials {
		key := material.NameKey(m.Name)
		if _, dup := ledger[key]; !dup {
			ledger[key] = m
		}
	}

	byKey := make(map[string]*Impact)
	for _, l := range logs {
		for _, u := range l.MaterialsUsed {
			key := material.NameKey(u.Name)
			if key == "" {
				continue
			}
			imp, ok := byKey[key]
			if !ok {
				imp = &Impact{Material: u.Name, Unit: u.Unit}
				byKey[key] = imp
			}
			qty, ok := worklog.ParseQuantity(u.Quantity)
			if !ok || math.IsNaN(qty) || math.IsInf(qty, 0) {
				imp.UnparsedRows++
				continue
			}
			imp.Consumed += qty
		}
	}

	out := make([]Impact, 0, len(byKey))
	for key, imp := range byKey {
		if m, ok := ledger[key]; ok {
			imp.Matched = true
			imp.Material = m.Name
			if m.Unit != "" {
				imp.Unit = m.Unit
			}
			imp.CurrentStock = m.CurrentStock
			imp.ReorderLevel = m.ReorderLevel
			imp.ProjectedStock = math.Max(0, m.CurrentStock-imp.Consumed)
			imp.BelowReorder = imp.ProjectedStock <= m.ReorderLevel
		}
		out = append(out, *imp)
	}
	sort.Slice(out, func(i, j int) bool {
		return material.NameKey(out[i].Material) < material.NameKey(out[j].Material)
	})
	return out
}
