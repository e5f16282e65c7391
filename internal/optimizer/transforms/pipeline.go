package transforms

import "compiler/internal/optimizer"

// DefaultPipeline returns the optimizer's standard pass ordering: a
// "Canonicalizer" cascade running the local simplifications to a fixed
// point, followed by a whole-module dead-function sweep once the
// canonicalizer has converged.
func DefaultPipeline() *optimizer.Optimizer {
	canonicalizer := optimizer.NewCascade("Canonicalizer",
		FoldConstants(),
		EraseUnusedOps(),
		FoldControlFlowOps(),
		MinimizeBoolExpression(),
		OrderingCommutativityOps(),
		PropagateConstants(),
		SinkControlFlowOps(),
		JoinConditionsBranches(),
		HoistLoopInvariants(),
		UnswitchLoops(),
	)
	return optimizer.New().
		Add(canonicalizer).
		Add(EraseUnusedFunctions())
}
