package program

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fatih/color"
)

type ListingOptions struct {
	Color bool
}

// WriteListing prints the program for humans: a data header with the
// variable table, then one instruction per line as
//
//	index line > NAME(op1, op2)
//
// where '>' marks the first instruction of a statement.
func (p *Program) WriteListing(w io.Writer, opts ListingOptions) error {
	bw := bufio.NewWriter(w)

	mnemonic := color.New(color.FgCyan)
	comment := color.New(color.FgHiBlack)
	marker := color.New(color.FgYellow, color.Bold)
	for _, c := range []*color.Color{mnemonic, comment, marker} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	comment.Fprintf(bw, "; data: %d bytes, code: %d instructions\n", len(p.Data), len(p.Code))
	for _, v := range p.VariablesByAddress() {
		comment.Fprintf(bw, ";   %-6d %-12s size %d  (line %d)\n", v.Address, v.Name, v.Size, v.Line)
	}

	for i, ins := range p.Code {
		mark := " "
		if p.IsBoundary(uint64(i)) {
			mark = marker.Sprint(">")
		}
		fmt.Fprintf(bw, "%5d %4d %s %s\n", i, p.Line(i), mark, mnemonic.Sprint(ins.String()))
	}
	return bw.Flush()
}
