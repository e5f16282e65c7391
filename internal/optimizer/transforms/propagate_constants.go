package transforms

import (
	"compiler/internal/optimizer"
	"compiler/internal/optree"
)

// addrScope maps an address (the pointer value passed as a Store's or
// Load's destination/source operand) to the Constant's result value last
// stored there within one lexical scope.
type addrScope map[*optree.Value]*optree.Value

// PropagateConstants runs once per Function, walking its body top-down
// with a stack of addrScopes. A Store of a Constant value records the
// mapping in the innermost scope; a Store of anything else clears any
// existing mapping for that address (the address's value is no longer
// statically known). A Load whose address is mapped in any enclosing
// scope has every use of its result rewired directly to the recorded
// constant. Every operation with a nested body (If, Then, Else, For,
// While, and also Condition, which isn't itself listed as scoped but
// whose self-contained test body behaves identically either way) opens
// its own scope; addresses stored to anywhere within it are deleted from
// every enclosing scope once it returns, since those scopes can no
// longer be sure what the address currently holds.
//
// Unlike a reading of the reference implementation's scope search that
// returns immediately on the first scope lacking an entry, this walks
// every enclosing scope from innermost to outermost before giving up —
// the nested-scope semantics the textual spec describes.
func PropagateConstants() optimizer.BaseTransform {
	gate := optimizer.KindGate(optree.FunctionId)
	return optimizer.NewSimple("PropagateConstants", gate, func(op *optree.Operation, b *optimizer.OptBuilder) {
		propagateScope(op.Body, nil, b)
	})
}

// propagateScope processes one lexical scope's statement list and
// returns the set of addresses stored to anywhere within it (including
// nested scopes), so the caller can invalidate matching entries of its
// own scope.
func propagateScope(body []*optree.Operation, scopes []addrScope, b *optimizer.OptBuilder) map[*optree.Value]bool {
	cur := addrScope{}
	scopes = append(scopes, cur)
	stored := map[*optree.Value]bool{}

	for _, child := range body {
		switch {
		case child.Is(optree.StoreId):
			stored[recordStore(child, cur)] = true
		case child.Is(optree.LoadId):
			propagateLoad(child, scopes, b)
		}
		if len(child.Body) > 0 {
			for addr := range propagateScope(child.Body, scopes, b) {
				stored[addr] = true
				for _, s := range scopes {
					delete(s, addr)
				}
			}
		}
	}
	return stored
}

func recordStore(store *optree.Operation, scope addrScope) *optree.Value {
	s, _ := optree.AsStore(store)
	dst := s.Dst()
	if _, ok := optree.AsConstant(s.ValueToStore().Owner); ok {
		scope[dst] = s.ValueToStore()
	} else {
		delete(scope, dst)
	}
	return dst
}

func propagateLoad(load *optree.Operation, scopes []addrScope, b *optimizer.OptBuilder) {
	l, _ := optree.AsLoad(load)
	src := l.Src()
	for i := len(scopes) - 1; i >= 0; i-- {
		if val, ok := scopes[i][src]; ok {
			rewireLoadUses(load, val, b)
			return
		}
	}
}

func rewireLoadUses(load *optree.Operation, value *optree.Value, b *optimizer.OptBuilder) {
	l, _ := optree.AsLoad(load)
	result := l.Result()
	uses := append([]optree.Use(nil), result.Uses...)
	for _, u := range uses {
		user, idx := u.User, u.OperandNumber
		b.Update(user, func() { user.SetOperand(idx, value) })
	}
}
