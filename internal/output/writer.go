package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lgbarn/chess-rules-go/internal/config"
)

// ReportWriter is the interface for writing position reports to output.
type ReportWriter interface {
	// WriteReport writes a single report to the output.
	WriteReport(r *PositionReport) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer. Batch writers write pending output here.
	Close() error
}

// NewWriter returns the writer for the configured output format.
func NewWriter(w io.Writer, cfg *config.Config) ReportWriter {
	if cfg.Output.Format == config.JSON {
		return NewJSONWriter(w, cfg)
	}
	return NewTextWriter(w, cfg)
}

// TextWriter writes reports as readable text, one block per report.
type TextWriter struct {
	w       io.Writer
	cfg     *config.Config
	written int
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer, cfg *config.Config) *TextWriter {
	return &TextWriter{
		w:   w,
		cfg: cfg,
	}
}

// WriteReport writes a report immediately, separated from the previous
// one by a blank line.
func (tw *TextWriter) WriteReport(r *PositionReport) error {
	if tw.written > 0 {
		if _, err := fmt.Fprintln(tw.w); err != nil {
			return err
		}
	}
	OutputReport(r, &tw.cfg.Output, tw.w)
	tw.written++
	return nil
}

// Flush is a no-op; text is written immediately.
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return nil
}

// JSONOutput holds multiple reports for array output.
type JSONOutput struct {
	Positions []*PositionReport `json:"positions"`
}

// JSONWriter writes reports in JSON format.
// It buffers reports and writes them as a single document on Close or Flush.
type JSONWriter struct {
	w       io.Writer
	cfg     *config.Config
	reports []*PositionReport
	single  bool
}

// NewJSONWriter creates a JSON writer that batches reports.
func NewJSONWriter(w io.Writer, cfg *config.Config) *JSONWriter {
	return &JSONWriter{
		w:       w,
		cfg:     cfg,
		reports: make([]*PositionReport, 0),
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each report immediately.
func NewJSONWriterSingle(w io.Writer, cfg *config.Config) *JSONWriter {
	return &JSONWriter{
		w:      w,
		cfg:    cfg,
		single: true,
	}
}

// WriteReport buffers a report, or writes it immediately in single mode.
func (jw *JSONWriter) WriteReport(r *PositionReport) error {
	if jw.single {
		return jw.encode(jw.view(r))
	}
	jw.reports = append(jw.reports, r)
	return nil
}

// Flush writes all buffered reports as one JSON document.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.reports) == 0 {
		return nil
	}

	out := &JSONOutput{
		Positions: make([]*PositionReport, 0, len(jw.reports)),
	}
	for _, r := range jw.reports {
		out.Positions = append(out.Positions, jw.view(r))
	}
	err := jw.encode(out)

	jw.reports = jw.reports[:0]
	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}

// view drops the move list when listing is turned off.
func (jw *JSONWriter) view(r *PositionReport) *PositionReport {
	if jw.cfg.Output.ListMoves || len(r.LegalMoves) == 0 {
		return r
	}
	trimmed := *r
	trimmed.LegalMoves = nil
	return &trimmed
}

func (jw *JSONWriter) encode(v interface{}) error {
	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
