// Package optimizer implements the rewrite-pass infrastructure: the
// Notifier-driven OptBuilder, the BaseTransform/Transform contract, and
// the fixed-point Optimizer driver that repeatedly applies transforms
// until a full sweep causes no mutation.
package optimizer

import (
	"compiler/internal/builder"
	"compiler/internal/optree"
)

// Notifier holds the callbacks an OptBuilder fires on insert/update/
// erase, driving the fixed-point driver's worklist (see optimizer.go).
// Any callback may be nil.
type Notifier struct {
	OnInsert func(op *optree.Operation)
	OnUpdate func(op *optree.Operation)
	OnErase  func(op *optree.Operation)
}

// OptBuilder extends builder.Builder with notification: every mutating
// call reports the affected operation(s) to the Notifier so the driver
// can re-queue them.
type OptBuilder struct {
	builder.Builder
	notifier Notifier
}

// NewOptBuilder creates an OptBuilder with the given notifier and an unset
// cursor; callers must call SetInsertPointBefore/After before inserting.
func NewOptBuilder(notifier Notifier) *OptBuilder {
	return &OptBuilder{notifier: notifier}
}

// Insert attaches op at the cursor and notifies insert.
func (b *OptBuilder) Insert(op *optree.Operation) *optree.Operation {
	b.Builder.Insert(op)
	if b.notifier.OnInsert != nil {
		b.notifier.OnInsert(op)
	}
	return op
}

// Clone deep-clones op (and its body, recursively), inserts the clone at
// the cursor, and notifies insert for every new operation — the clone's
// root and every descendant.
func (b *OptBuilder) Clone(op *optree.Operation) *optree.Operation {
	c := op.Clone()
	b.Builder.Insert(c)
	b.notifyInsertTree(c)
	return c
}

func (b *OptBuilder) notifyInsertTree(op *optree.Operation) {
	if b.notifier.OnInsert != nil {
		b.notifier.OnInsert(op)
	}
	for _, child := range op.Body {
		b.notifyInsertTree(child)
	}
}

// Erase repositions the cursor to just after op, then recursively erases
// op's body (children first) and finally op itself, notifying erase for
// each operation as it is detached.
func (b *OptBuilder) Erase(op *optree.Operation) {
	b.SetInsertPointAfter(op)
	b.eraseTree(op)
}

func (b *OptBuilder) eraseTree(op *optree.Operation) {
	for i := len(op.Body) - 1; i >= 0; i-- {
		b.eraseTree(op.Body[i])
	}
	op.EraseSelf()
	if b.notifier.OnErase != nil {
		b.notifier.OnErase(op)
	}
}

// Update runs actor (an arbitrary mutation that preserves operation-tree
// invariants) and then notifies update for op.
func (b *OptBuilder) Update(op *optree.Operation, actor func()) {
	actor()
	if b.notifier.OnUpdate != nil {
		b.notifier.OnUpdate(op)
	}
}

// Replace rewires every use of each of op's results to the corresponding
// result of newOp (each rewire wrapped in Update on the consuming
// operation, so it re-enters the worklist too), then erases op.
func (b *OptBuilder) Replace(op, newOp *optree.Operation) {
	for i, oldResult := range op.Results {
		newResult := newOp.Results[i]
		uses := append([]optree.Use(nil), oldResult.Uses...)
		for _, u := range uses {
			user := u.User
			operandNumber := u.OperandNumber
			b.Update(user, func() {
				user.SetOperand(operandNumber, newResult)
			})
		}
	}
	b.Erase(op)
}
