package diagfmt

import (
	"encoding/json"
	"io"

	"tokiwen/internal/diag"
	"tokiwen/internal/source"
)

// LocationJSON is a span as byte offsets, plus line/col when requested.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Title    string       `json:"title"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput is the root of the JSON document. Errors and Warnings
// count what was written, Truncated is set when Max cut the list.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Errors      int              `json:"errors"`
	Warnings    int              `json:"warnings"`
	Truncated   bool             `json:"truncated,omitempty"`
}

// Source pairs a bag with the file set its spans point into. Every file of
// a multi-file compile has its own.
type Source struct {
	Bag   *diag.Bag
	Files *source.FileSet
}

// BuildDiagnosticsOutput builds the JSON document for one bag.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	return Collect([]Source{{Bag: bag, Files: fs}}, opts)
}

// Collect concatenates the diagnostics of every source in order.
func Collect(sources []Source, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{Diagnostics: []DiagnosticJSON{}}
	for _, src := range sources {
		if src.Bag == nil {
			continue
		}
		for _, d := range src.Bag.Items() {
			if opts.Max > 0 && len(out.Diagnostics) == opts.Max {
				out.Truncated = true
				break
			}
			out.Diagnostics = append(out.Diagnostics, diagnosticJSON(d, src.Files, opts))
			switch d.Severity {
			case diag.SevError:
				out.Errors++
			case diag.SevWarning:
				out.Warnings++
			}
		}
	}
	out.Count = len(out.Diagnostics)
	return out
}

func diagnosticJSON(d diag.Diagnostic, fs *source.FileSet, opts JSONOpts) DiagnosticJSON {
	dj := DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Title:    d.Code.Title(),
		Message:  d.Message,
		Location: locationOf(d.Primary, fs, opts),
	}
	if opts.IncludeNotes {
		for _, note := range d.Notes {
			dj.Notes = append(dj.Notes, NoteJSON{
				Message:  note.Msg,
				Location: locationOf(note.Span, fs, opts),
			})
		}
	}
	return dj
}

// locationOf resolves span; without its file only the offsets are known.
func locationOf(span source.Span, fs *source.FileSet, opts JSONOpts) LocationJSON {
	loc := LocationJSON{StartByte: span.Start, EndByte: span.End}
	if fs == nil {
		return loc
	}
	f := fs.Get(span.File)
	if f == nil {
		return loc
	}
	loc.File = formatPath(f.Path, opts.PathMode, opts.BaseDir)
	if opts.IncludePositions {
		start, end := fs.Resolve(span)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

// JSON writes the document for one bag.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	return encodeJSON(w, BuildDiagnosticsOutput(bag, fs, opts))
}

// JSONAll writes one document covering every source.
func JSONAll(w io.Writer, sources []Source, opts JSONOpts) error {
	return encodeJSON(w, Collect(sources, opts))
}

func encodeJSON(w io.Writer, out DiagnosticsOutput) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
