package safety

import (
	"fmt"
	"math"
	"sort"
)

// BoundsHook disallows proposed states carrying numeric fields outside
// [Min, Max] or non-finite values. States shaped as map[string]any or
// map[string]float64 are inspected field by field; other state kinds
// pass unexamined, since the hook guards numeric ranges, not structure.
type BoundsHook struct {
	Min float64
	Max float64

	// OnViolation is the action requested for a failing state. Empty
	// requests a veto.
	OnViolation Action
}

// Check reports the first out-of-range field in key order.
func (h BoundsHook) Check(state any, ctx map[string]any) Result {
	fields := map[string]float64{}
	switch s := state.(type) {
	case map[string]float64:
		for k, v := range s {
			fields[k] = v
		}
	case map[string]any:
		for k, v := range s {
			switch n := v.(type) {
			case float64:
				fields[k] = n
			case int:
				fields[k] = float64(n)
			}
		}
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := fields[k]
		if math.IsNaN(v) || math.IsInf(v, 0) || v < h.Min || v > h.Max {
			return Result{
				Allowed: false,
				Action:  h.OnViolation,
				Reason:  fmt.Sprintf("field %s = %v outside [%g, %g]", k, v, h.Min, h.Max),
			}
		}
	}
	return Result{Allowed: true, Action: ActionAllow}
}
