package buildpipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tokiwen/internal/program"
)

// EmitRequest says where and how compiled units are written.
type EmitRequest struct {
	Result   *CompileResult
	OutDir   string
	Format   Format
	Progress ProgressSink
}

// Output pairs a source with the file written for it.
type Output struct {
	Source string
	Path   string
}

// Emit writes one output per successful unit under OutDir, mirroring the
// display path of its source.
func Emit(ctx context.Context, req *EmitRequest) ([]Output, error) {
	if req == nil || req.Result == nil {
		return nil, fmt.Errorf("missing emit request")
	}
	started := time.Now()
	emitStage(req.Progress, StageEmit, StatusWorking, nil, 0)

	var outputs []Output
	for i, u := range req.Result.Units {
		if err := ctx.Err(); err != nil {
			return outputs, err
		}
		if u == nil || u.Failed() {
			continue
		}
		out := OutputPath(req.Result.Display[i], req.OutDir, req.Format)
		if err := writeFile(out, u.Program, req.Format); err != nil {
			emitStage(req.Progress, StageEmit, StatusError, err, time.Since(started))
			return outputs, err
		}
		outputs = append(outputs, Output{Source: u.Path, Path: out})
	}
	elapsed := time.Since(started)
	req.Result.Timings.Set(StageEmit, elapsed)
	emitStage(req.Progress, StageEmit, StatusDone, nil, elapsed)
	return outputs, nil
}

// OutputPath places display under outDir with the format's extension.
// Parent segments are dropped so outputs never escape outDir.
func OutputPath(display, outDir string, f Format) string {
	rel := filepath.FromSlash(display)
	if filepath.IsAbs(rel) || strings.HasPrefix(filepath.Clean(rel), "..") {
		rel = filepath.Base(rel)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + f.Ext()
	return filepath.Join(outDir, rel)
}

// WriteProgram encodes p in format f.
func WriteProgram(w io.Writer, p *program.Program, f Format) error {
	switch f {
	case FormatBinary:
		return program.WriteBinary(w, p)
	case FormatListing:
		return p.WriteListing(w, program.ListingOptions{})
	case FormatJSON:
		return p.WriteJSON(w)
	default:
		return program.WriteObject(w, p)
	}
}

func writeFile(path string, p *program.Program, f Format) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	bw := bufio.NewWriter(file)
	if err := WriteProgram(bw, p, f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return bw.Flush()
}
