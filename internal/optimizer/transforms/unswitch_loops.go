package transforms

import (
	"compiler/internal/optimizer"
	"compiler/internal/optree"
)

// UnswitchLoops hoists a loop-invariant If condition out of a While/For
// body by duplicating the whole loop: one copy with the If's Then body
// spliced in place of the If, one with its Else body, and replaces the
// original loop with an outer If dispatching to whichever copy matches
// the (invariant, so loop-constant) condition.
func UnswitchLoops() optimizer.BaseTransform {
	gate := optimizer.KindGate(optree.WhileId, optree.ForId)
	return optimizer.NewSimple("UnswitchLoops", gate, func(op *optree.Operation, b *optimizer.OptBuilder) {
		defined := map[*optree.Value]bool{}
		collectDefined(op.Body, defined)
		for _, v := range op.Inwards {
			defined[v] = true
		}

		target := findInvariantIf(op, defined)
		if target == nil {
			return
		}
		path := pathFromRoot(op, target)
		ifOp, _ := optree.AsIf(target)
		cond := ifOp.Cond()

		outerIf := optree.NewIf(cond)
		thenWrap := optree.NewThen()
		elseWrap := optree.NewElse()
		outerIf.AddToBody(thenWrap)
		outerIf.AddToBody(elseWrap)

		thenLoop := op.Clone()
		thenWrap.AddToBody(thenLoop)
		specializeLoop(nodeAtPath(thenLoop, path), true, b)

		elseLoop := op.Clone()
		elseWrap.AddToBody(elseLoop)
		specializeLoop(nodeAtPath(elseLoop, path), false, b)

		b.SetInsertPointBefore(op)
		b.Insert(outerIf)
		b.Erase(op)
	})
}

// findInvariantIf returns the first top-level If in op's loop body whose
// condition value is not produced or stored within the loop.
func findInvariantIf(op *optree.Operation, defined map[*optree.Value]bool) *optree.Operation {
	for _, child := range loopStatements(op) {
		if !child.Is(optree.IfId) {
			continue
		}
		ifOp, _ := optree.AsIf(child)
		if !defined[ifOp.Cond()] {
			return child
		}
	}
	return nil
}

// pathFromRoot records target's body-index at every level between root
// and target, so the same position can be located inside a clone of root.
func pathFromRoot(root, target *optree.Operation) []int {
	var path []int
	for p := target; p != nil && p != root; p = p.Parent {
		path = append([]int{p.Position()}, path...)
	}
	return path
}

func nodeAtPath(root *optree.Operation, path []int) *optree.Operation {
	n := root
	for _, idx := range path {
		n = n.Body[idx]
	}
	return n
}

// specializeLoop resolves ifNode (the clone's copy of the unswitched If)
// by hoisting its Then body (keepThen) or Else body in its place, the
// same splice foldIf uses for a statically-resolved condition, then
// erases ifNode.
func specializeLoop(ifNode *optree.Operation, keepThen bool, b *optimizer.OptBuilder) {
	ifOp, _ := optree.AsIf(ifNode)
	var branch *optree.Operation
	if keepThen {
		branch = ifOp.ThenOp()
	} else {
		branch = ifOp.ElseOp()
	}
	b.SetInsertPointBefore(ifNode)
	if branch != nil {
		hoistBody(branch, b)
	}
	b.Erase(ifNode)
}
