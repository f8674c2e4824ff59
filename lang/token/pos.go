package token

import "fmt"

// Pos is a 1-based source line number. A value of 0 means "unknown", per
// spec.md §3's Token carrying only an "originating line number" (no column,
// unlike the teacher's packed line/column Pos in lang/token/pos.go).
type Pos int

// Unknown reports whether p does not refer to a known line.
func (p Pos) Unknown() bool { return p == 0 }

// Position is a human-readable source position, used to format diagnostics
// and to key go/scanner.ErrorList entries.
type Position struct {
	Filename string
	Line     int
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("line %d", p.Line)
	}
	return fmt.Sprintf("%s:%d", p.Filename, p.Line)
}

// IsValid reports whether the position has a known line.
func (p Position) IsValid() bool { return p.Line > 0 }
