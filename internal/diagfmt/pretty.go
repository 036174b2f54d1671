package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"tokiwen/internal/diag"
	"tokiwen/internal/source"
)

type palette struct {
	err, warn, info, code, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgBlue, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgHiBlack),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		writeHeader(w, pal, d, fs, opts)
		writeSnippet(w, pal, d.Primary, fs, opts.Context)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			pal.note.Fprint(w, "  note")
			fmt.Fprintf(w, ": %s%s\n", location(n.Span, fs, opts.PathMode, opts.BaseDir), n.Msg)
		}
	}
}

func writeHeader(w io.Writer, pal palette, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	fmt.Fprint(w, location(d.Primary, fs, opts.PathMode, opts.BaseDir))
	pal.severity(d.Severity).Fprint(w, d.Severity.String())
	fmt.Fprint(w, " ")
	pal.code.Fprint(w, d.Code.ID())
	fmt.Fprintf(w, ": %s\n", d.Message)
}

// location is "path:line:col: ", or "" for diagnostics without a file.
func location(sp source.Span, fs *source.FileSet, mode PathMode, baseDir string) string {
	if fs == nil {
		return ""
	}
	f := fs.Get(sp.File)
	if f == nil {
		return ""
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d: ", formatPath(f.Path, mode, baseDir), start.Line, start.Col)
}

func writeSnippet(w io.Writer, pal palette, sp source.Span, fs *source.FileSet, context int8) {
	if fs == nil {
		return
	}
	f := fs.Get(sp.File)
	if f == nil || len(f.Content) == 0 {
		return
	}
	start, end := fs.Resolve(sp)
	lines, err := safecast.Conv[uint32](len(f.LineIdx) + 1)
	if err != nil {
		return
	}
	ctx := uint32(max(context, 0))
	first := max(1, start.Line-min(ctx, start.Line-1))
	last := min(lines, start.Line+ctx)
	gutter := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		text := strings.TrimRight(f.GetLine(ln), "\r\n")
		pal.gutter.Fprintf(w, "%*d | ", gutter, ln)
		fmt.Fprintln(w, text)
		if ln != start.Line {
			continue
		}
		pal.gutter.Fprintf(w, "%*s | ", gutter, "")
		fmt.Fprintln(w, pal.caret.Sprint(underline(text, start.Col, end, start.Line)))
	}
}

// underline builds the caret line under text. Columns are 1-based byte
// offsets; display widths come from runewidth so wide characters line up.
func underline(text string, col uint32, end source.LineCol, line uint32) string {
	from := min(int(col)-1, len(text))
	to := len(text)
	if end.Line == line {
		to = min(int(end.Col)-1, len(text))
	}
	pad := runewidth.StringWidth(text[:max(from, 0)])
	width := 1
	if to > from {
		width = max(1, runewidth.StringWidth(text[from:to]))
	}
	return strings.Repeat(" ", pad) + "^" + strings.Repeat("~", width-1)
}
