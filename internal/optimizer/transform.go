package optimizer

import "compiler/internal/optree"

// BaseTransform is one rewrite rule the pass manager can apply to a
// single operation.
type BaseTransform interface {
	// CanRun is the pattern gate: typically "op is one of a fixed set of
	// adaptor kinds".
	CanRun(op *optree.Operation) bool
	// Run performs the rewrite using builder, which is already
	// positioned immediately before op.
	Run(op *optree.Operation, b *OptBuilder)
	// Name is the diagnostic tag logged by the driver.
	Name() string
	// Recurse reports whether the driver should also apply this
	// transform to op's descendants. Cascade sets this false because it
	// runs its own inner driver over a single root.
	Recurse() bool
}

// KindGate returns a CanRun predicate that accepts operations whose
// spec-id transitively matches any of ids — the common case of "op is
// adaptor X or Y or …". An empty ids list matches every operation,
// mirroring the reference implementation's zero-adaptor-types Transform.
func KindGate(ids ...optree.SpecId) func(*optree.Operation) bool {
	if len(ids) == 0 {
		return func(*optree.Operation) bool { return true }
	}
	return func(op *optree.Operation) bool {
		for _, id := range ids {
			if op.Is(id) {
				return true
			}
		}
		return false
	}
}

// simpleTransform is the common shape of every concrete transform in
// internal/optimizer/transforms: a name, a kind gate, and a run function.
// It implements BaseTransform with Recurse always true.
type simpleTransform struct {
	name string
	gate func(*optree.Operation) bool
	run  func(op *optree.Operation, b *OptBuilder)
}

// NewSimple builds a BaseTransform from a name, kind gate and run
// function. Concrete transforms (fold_constants.go, erase_unused_ops.go,
// …) are constructed through this, the Go analogue of the reference
// implementation's `Transform<AdaptorTypes...>` template.
func NewSimple(name string, gate func(*optree.Operation) bool, run func(op *optree.Operation, b *OptBuilder)) BaseTransform {
	return &simpleTransform{name: name, gate: gate, run: run}
}

func (t *simpleTransform) CanRun(op *optree.Operation) bool { return t.gate(op) }
func (t *simpleTransform) Run(op *optree.Operation, b *OptBuilder) { t.run(op, b) }
func (t *simpleTransform) Name() string                     { return t.name }
func (t *simpleTransform) Recurse() bool                    { return true }

// Cascade is a meta-transform owning a nested transform list; Run drives
// the fixed-point algorithm (see optimizer.go) against op alone, forming
// named bundles such as a "Canonicalizer". Recurse is false: the driver
// must not separately descend into op's children, since Cascade's own
// inner Optimizer already covers the whole subtree rooted at op.
type Cascade struct {
	cascadeName string
	inner       *Optimizer
}

// NewCascade builds a Cascade named name running transforms to a fixed
// point over whatever single operation it is invoked on.
func NewCascade(name string, transforms ...BaseTransform) *Cascade {
	opt := New()
	for _, tr := range transforms {
		opt.Add(tr)
	}
	return &Cascade{cascadeName: name, inner: opt}
}

func (c *Cascade) CanRun(op *optree.Operation) bool { return true }
func (c *Cascade) Run(op *optree.Operation, b *OptBuilder) {
	c.inner.ProcessOp(op)
}
func (c *Cascade) Name() string  { return c.cascadeName }
func (c *Cascade) Recurse() bool { return false }
