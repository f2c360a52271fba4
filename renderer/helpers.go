// Package renderer renders stockbook reports as markdown.
package renderer

import (
	"bytes"
	"io"
	"strings"

	"github.com/etnz/stockbook"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// cell escapes text for a table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// qty renders a quantity, rounded to 3 decimals.
func qty(q stockbook.Quantity) string { return q.Decimal().Round(3).String() }
