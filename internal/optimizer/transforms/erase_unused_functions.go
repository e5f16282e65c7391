package transforms

import (
	"compiler/internal/optimizer"
	"compiler/internal/optree"
)

// EraseUnusedFunctions builds the call graph over a Module's Function
// children, walks it breadth-first from "main", and erases every
// Function the walk never reaches.
func EraseUnusedFunctions() optimizer.BaseTransform {
	gate := optimizer.KindGate(optree.ModuleId)
	return optimizer.NewSimple("EraseUnusedFunctions", gate, func(op *optree.Operation, b *optimizer.OptBuilder) {
		byName := map[string]*optree.Operation{}
		for _, fn := range op.Body {
			f, ok := optree.AsFunction(fn)
			if !ok {
				continue
			}
			byName[f.FuncName()] = fn
		}

		reached := map[string]bool{}
		queue := []string{"main"}
		for len(queue) > 0 {
			name := queue[0]
			queue = queue[1:]
			if reached[name] {
				continue
			}
			reached[name] = true
			fn, ok := byName[name]
			if !ok {
				continue
			}
			for _, callee := range calledFunctions(fn) {
				if !reached[callee] {
					queue = append(queue, callee)
				}
			}
		}

		for _, fn := range append([]*optree.Operation(nil), op.Body...) {
			f, ok := optree.AsFunction(fn)
			if !ok {
				continue
			}
			if !reached[f.FuncName()] {
				b.Erase(fn)
			}
		}
	})
}

func calledFunctions(op *optree.Operation) []string {
	var names []string
	for _, child := range op.Body {
		if c, ok := optree.AsFunctionCall(child); ok {
			names = append(names, c.Name())
		}
		names = append(names, calledFunctions(child)...)
	}
	return names
}
