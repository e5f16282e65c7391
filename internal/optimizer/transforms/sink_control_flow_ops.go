package transforms

import (
	"compiler/internal/builder"
	"compiler/internal/optimizer"
	"compiler/internal/optree"
)

// SinkControlFlowOps moves an operation into the single If branch that
// consumes all of its results, when that branch is strictly nested below
// the operation's own region. It leaves the operation alone when its
// uses split across sibling branches, when any use reaches the branch's
// enclosing If only through a non-branch path (a nested While/For, or
// directly as the If's own condition), or when the single consuming
// region is the operation's own direct parent region.
func SinkControlFlowOps() optimizer.BaseTransform {
	return optimizer.NewSimple("SinkControlFlowOps", hasResults, func(op *optree.Operation, b *optimizer.OptBuilder) {
		parent := op.Parent
		if parent == nil {
			return
		}
		var target *optree.Operation
		for _, u := range allUses(op) {
			branch, ok := branchRegionFor(u.User, parent)
			if !ok {
				return
			}
			if target == nil {
				target = branch
			} else if target != branch {
				return
			}
		}
		if target == nil {
			return
		}
		b.Builder = builder.AtBodyBegin(target)
		clone := b.Clone(op)
		b.Replace(op, clone)
	})
}

func hasResults(op *optree.Operation) bool { return len(op.Results) > 0 }

func allUses(op *optree.Operation) []optree.Use {
	var uses []optree.Use
	for _, r := range op.Results {
		uses = append(uses, r.Uses...)
	}
	return uses
}

// branchRegionFor reports the Then/Else child of the If directly nested
// in parent's body that user descends through, or ok=false when user
// isn't strictly inside a branch of such an If (including when user is
// the If's own condition operand, or reaches parent through any other
// kind of nested region).
func branchRegionFor(user, parent *optree.Operation) (*optree.Operation, bool) {
	var entry *optree.Operation
	for p := user; p != nil; p = p.Parent {
		if p.Parent == parent {
			entry = p
			break
		}
	}
	if entry == nil || !entry.Is(optree.IfId) {
		return nil, false
	}
	for p := user; p != nil && p != entry; p = p.Parent {
		if p.Parent == entry && (p.Is(optree.ThenId) || p.Is(optree.ElseId)) {
			return p, true
		}
	}
	return nil, false
}
