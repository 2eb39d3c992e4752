package suite

import (
	"context"
	"fmt"
	"io"
	"log"
	"slices"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/hashing"
	"github.com/lgbarn/chess-rules-go/internal/output"
	"github.com/lgbarn/chess-rules-go/internal/worker"
)

// Outcome is the result of running one case.
type Outcome struct {
	Case   Case
	Report *output.PositionReport
	// Err is set when the case could not be evaluated, for example
	// because one of its moves is illegal.
	Err error
	// Skipped is set for cases left unevaluated after a fail-fast stop
	// or cancellation.
	Skipped bool
	// DuplicateOf names an earlier case that reaches the same position.
	DuplicateOf string
}

// Passed returns true if the case was evaluated and every check held.
func (o Outcome) Passed() bool {
	return o.Err == nil && o.Report != nil && o.Report.Passed != nil && *o.Report.Passed
}

// Summary counts the outcomes of a run.
type Summary struct {
	Total   int
	Passed  int
	Failed  int
	Errors  int
	Skipped int
	// Repeated counts cases that reach a position an earlier case reached.
	Repeated int
}

// OK returns true if nothing failed.
func (s Summary) OK() bool {
	return s.Failed == 0 && s.Errors == 0 && s.Skipped == 0
}

func (s Summary) String() string {
	text := fmt.Sprintf("%d positions: %d passed, %d failed, %d errors, %d skipped",
		s.Total, s.Passed, s.Failed, s.Errors, s.Skipped)
	if s.Repeated > 0 {
		text += fmt.Sprintf(", %d repeated", s.Repeated)
	}
	return text
}

// Summarize counts outcomes.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Total: len(outcomes)}
	for _, o := range outcomes {
		switch {
		case o.Skipped:
			s.Skipped++
		case o.Err != nil:
			s.Errors++
		case o.Passed():
			s.Passed++
		default:
			s.Failed++
		}
	}
	return s
}

// Run evaluates every case on a worker pool sized by cfg.Suite and returns
// the outcomes in case order. With FailFast set the pool stops after the
// first failing case and the cases not yet evaluated are marked skipped.
func Run(ctx context.Context, cases []Case, cfg *config.Config, logger *log.Logger) ([]Outcome, Summary) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	outcomes := make([]Outcome, len(cases))
	items := make([]worker.WorkItem, 0, len(cases))
	caseIndex := make([]int, 0, len(cases))
	histories := make([][]string, 0, len(cases))
	seen := hashing.NewDuplicateDetector()

	for i := range cases {
		outcomes[i].Case = cases[i]
		g, err := cases[i].Position()
		if err != nil {
			outcomes[i].Err = err
			if cfg.Verbosity > 1 {
				logger.Printf("%s: %v", cases[i].Name, err)
			}
			continue
		}
		if first, dup := seen.CheckAndAdd(cases[i].Name, &g.Board, g.SideToMove); dup {
			outcomes[i].DuplicateOf = first
			if cfg.Verbosity > 0 {
				logger.Printf("%s: same position as %s", cases[i].Name, first)
			}
		}
		items = append(items, worker.WorkItem{
			Index:  len(items),
			Name:   cases[i].Name,
			Board:  g.Board,
			ToMove: g.SideToMove,
		})
		caseIndex = append(caseIndex, i)
		histories = append(histories, g.History())
	}

	var pool *worker.Pool
	process := func(item worker.WorkItem) worker.ProcessResult {
		c := &cases[caseIndex[item.Index]]
		report := output.NewPositionReport(c.Name, item.Board, item.ToMove)
		if len(histories[item.Index]) > 0 {
			report.History = histories[item.Index]
		}
		failures := Check(c, report)
		report.SetResult(failures)

		if len(failures) > 0 {
			if cfg.Verbosity > 1 {
				logger.Printf("%s: FAIL (%s)", c.Name, strings.Join(failures, "; "))
			}
			if cfg.Suite.FailFast {
				pool.Stop()
				cancel()
			}
		} else if cfg.Verbosity > 1 {
			logger.Printf("%s: pass", c.Name)
		}
		return worker.ProcessResult{
			Index:  item.Index,
			Name:   item.Name,
			Passed: len(failures) == 0,
			Report: report,
		}
	}
	pool = worker.NewPool(process,
		worker.WithWorkers(cfg.Suite.Workers),
		worker.WithBufferSize(cfg.Suite.BufferSize))

	for _, result := range pool.RunAll(ctx, items) {
		o := &outcomes[caseIndex[result.Index]]
		if result.Error != nil {
			o.Err = result.Error
			o.Skipped = true
			continue
		}
		o.Report, _ = result.Report.(*output.PositionReport)
	}

	summary := Summarize(outcomes)
	summary.Repeated = seen.DuplicateCount()
	if cfg.Verbosity > 0 {
		logger.Printf("suite: %s", summary)
	}
	return outcomes, summary
}

// Check compares a report against the case's expectations and returns a
// description of each mismatch. A perft expectation adds the count to the
// report.
func Check(c *Case, report *output.PositionReport) []string {
	var failures []string
	e := c.Expect

	if e.Status != "" && report.Status != e.Status {
		failures = append(failures, fmt.Sprintf("status: got %s, want %s", report.Status, e.Status))
	}
	if e.InCheck != nil && report.InCheck != *e.InCheck {
		failures = append(failures, fmt.Sprintf("in_check: got %t, want %t", report.InCheck, *e.InCheck))
	}
	if e.LegalMoves != nil && report.LegalMoveCount != *e.LegalMoves {
		failures = append(failures, fmt.Sprintf("legal_moves: got %d, want %d", report.LegalMoveCount, *e.LegalMoves))
	}
	if e.Moves != nil {
		if missing, extra := diffMoves(report.LegalMoves, e.Moves); len(missing)+len(extra) > 0 {
			failures = append(failures, fmt.Sprintf("moves: missing [%s], unexpected [%s]",
				strings.Join(missing, " "), strings.Join(extra, " ")))
		}
	}
	if e.Perft != nil {
		report.AddPerft(e.Perft.Depth, false)
		if report.Perft.Nodes != e.Perft.Nodes {
			failures = append(failures, fmt.Sprintf("perft(%d): got %d, want %d",
				e.Perft.Depth, report.Perft.Nodes, e.Perft.Nodes))
		}
	}
	return failures
}

// diffMoves returns the wanted moves not in got and the moves in got not
// wanted, both sorted. "e2-e4" and "e2e4" are the same move.
func diffMoves(got, want []string) (missing, extra []string) {
	wanted := make(map[string]bool, len(want))
	for _, text := range want {
		if m, ok := chess.ParseMove(text); ok {
			wanted[m.String()] = true
		}
	}
	have := make(map[string]bool, len(got))
	for _, m := range got {
		have[m] = true
		if !wanted[m] {
			extra = append(extra, m)
		}
	}
	for m := range wanted {
		if !have[m] {
			missing = append(missing, m)
		}
	}
	slices.Sort(missing)
	slices.Sort(extra)
	return missing, extra
}
