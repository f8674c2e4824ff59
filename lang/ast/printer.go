package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer writes an indented, one-line-per-node dump of an AST to an
// io.Writer. It is a debugging aid; no CLI command exposes it.
type Printer struct {
	W     io.Writer
	depth int
}

// Print walks n, writing one line per node indented by its nesting depth.
func (p *Printer) Print(n Node) {
	Walk(printerVisitor{p}, n)
}

type printerVisitor struct{ p *Printer }

func (pv printerVisitor) Visit(n Node, dir VisitDirection) Visitor {
	if dir == VisitExit {
		pv.p.depth--
		return pv
	}
	fmt.Fprintf(pv.p.W, "%s%v\n", strings.Repeat("  ", pv.p.depth), n)
	pv.p.depth++
	return pv
}
