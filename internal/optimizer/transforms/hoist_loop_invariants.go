package transforms

import (
	"compiler/internal/optimizer"
	"compiler/internal/optree"
)

// HoistLoopInvariants clones each top-level statement of a While/For
// loop body whose operands are all defined outside the loop to just
// before the loop, and replaces the original with the clone. While, For,
// Load, Condition and Store are never hoisted themselves — Load and
// Store touch memory the loop may mutate on later iterations, and the
// remaining three are the loop's own control-flow skeleton.
func HoistLoopInvariants() optimizer.BaseTransform {
	gate := optimizer.KindGate(optree.WhileId, optree.ForId)
	return optimizer.NewSimple("HoistLoopInvariants", gate, func(op *optree.Operation, b *optimizer.OptBuilder) {
		defined := map[*optree.Value]bool{}
		collectDefined(op.Body, defined)
		for _, v := range op.Inwards {
			defined[v] = true
		}

		for _, child := range loopStatements(op) {
			if !isHoistable(child) || !allOperandsOutside(child, defined) {
				continue
			}
			b.SetInsertPointBefore(op)
			clone := b.Clone(child)
			b.Replace(child, clone)
		}
	})
}

// loopStatements returns the statements actually executed each
// iteration: for While, everything after the leading Condition; for For,
// the entire body (For has no Condition child).
func loopStatements(op *optree.Operation) []*optree.Operation {
	if op.Is(optree.WhileId) {
		if len(op.Body) <= 1 {
			return nil
		}
		return append([]*optree.Operation(nil), op.Body[1:]...)
	}
	return append([]*optree.Operation(nil), op.Body...)
}

// collectDefined records every value produced (as a result or inward) or
// stored to anywhere within body, recursively — the set an invariant
// candidate's operands must avoid.
func collectDefined(body []*optree.Operation, defined map[*optree.Value]bool) {
	for _, child := range body {
		for _, v := range child.Results {
			defined[v] = true
		}
		for _, v := range child.Inwards {
			defined[v] = true
		}
		if child.Is(optree.StoreId) {
			s, _ := optree.AsStore(child)
			defined[s.Dst()] = true
		}
		collectDefined(child.Body, defined)
	}
}

func isHoistable(op *optree.Operation) bool {
	switch {
	case op.Is(optree.WhileId), op.Is(optree.ForId), op.Is(optree.LoadId),
		op.Is(optree.ConditionId), op.Is(optree.StoreId):
		return false
	default:
		return true
	}
}

func allOperandsOutside(op *optree.Operation, defined map[*optree.Value]bool) bool {
	for _, o := range op.Operands {
		if defined[o] {
			return false
		}
	}
	return true
}
