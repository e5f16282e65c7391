package optree

import (
	"fmt"
	"strings"
)

// printer renders the stable textual dump described by the external
// interface contract: one line per operation, indented two spaces per
// nesting level, in the form
//
//	<name> [{<attr>, <attr>, …}] (<operand-ref>, …) -> (<own-result-ref>, …) [[<inward-ref>, …]]
//
// where <operand-ref> is `#<global-id> : <type-printed>`. IDs are
// assigned in encounter order across the whole dump. This format is a
// contract (§6.2) and must not be reformatted casually.
type printer struct {
	ids map[*Value]int
	buf strings.Builder
}

// Dump renders op (and its body, recursively) using the stable textual
// format.
func Dump(op *Operation) string {
	p := &printer{ids: map[*Value]int{}}
	p.print(op, 0)
	return p.buf.String()
}

func (p *printer) idOf(v *Value) int {
	if id, ok := p.ids[v]; ok {
		return id
	}
	id := len(p.ids)
	p.ids[v] = id
	return id
}

func (p *printer) ref(v *Value) string {
	return fmt.Sprintf("#%d : %s", p.idOf(v), v.Type.String())
}

func (p *printer) print(op *Operation, depth int) {
	indent := strings.Repeat("  ", depth)

	attrs := make([]string, len(op.Attributes))
	for i, a := range op.Attributes {
		attrs[i] = a.String()
	}
	operands := make([]string, len(op.Operands))
	for i, v := range op.Operands {
		operands[i] = p.ref(v)
	}
	results := make([]string, len(op.Results))
	for i, v := range op.Results {
		results[i] = p.ref(v)
	}
	inwards := make([]string, len(op.Inwards))
	for i, v := range op.Inwards {
		inwards[i] = p.ref(v)
	}

	fmt.Fprintf(&p.buf, "%s%s [{%s}] (%s) -> (%s) [[%s]]\n",
		indent, op.Name,
		strings.Join(attrs, ", "),
		strings.Join(operands, ", "),
		strings.Join(results, ", "),
		strings.Join(inwards, ", "),
	)

	for _, child := range op.Body {
		p.print(child, depth+1)
	}
}
