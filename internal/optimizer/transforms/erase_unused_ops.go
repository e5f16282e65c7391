package transforms

import (
	"compiler/internal/optimizer"
	"compiler/internal/optree"
)

// EraseUnusedOps erases a Constant/ArithBinary/ArithCast/LogicBinary/
// LogicUnary whose every result has no remaining uses.
func EraseUnusedOps() optimizer.BaseTransform {
	gate := optimizer.KindGate(
		optree.ConstantId, optree.ArithBinaryId, optree.ArithCastId,
		optree.LogicBinaryId, optree.LogicUnaryId,
	)
	return optimizer.NewSimple("EraseUnusedOps", gate, func(op *optree.Operation, b *optimizer.OptBuilder) {
		for _, r := range op.Results {
			if !r.Unused() {
				return
			}
		}
		b.Erase(op)
	})
}
