// chess-rules analyses chess positions: legal moves, check, checkmate and
// stalemate, perft counts and YAML position suites. Games can be stored and
// resumed move by move.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	chesserrors "github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/game"
	"github.com/lgbarn/chess-rules-go/internal/output"
	"github.com/lgbarn/chess-rules-go/internal/storage"
	"github.com/lgbarn/chess-rules-go/internal/suite"
)

const programVersion = "0.1.0"

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	opts := &options{}
	fs := newFlagSet(opts, stderr)
	fs.Usage = func() { usage(fs, stderr) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "Unexpected arguments: %v\n", fs.Args())
		usage(fs, stderr)
		return exitUsage
	}

	if opts.version {
		fmt.Fprintf(stdout, "chess-rules version %s\n", programVersion)
		return exitOK
	}

	cfg, err := loadConfig(opts, fs, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	if closer, ok := cfg.LogFile.(io.Closer); ok && opts.logFile != "" {
		defer closer.Close() //nolint:errcheck // log file
	}
	logger := log.New(cfg.LogFile, "chess-rules: ", 0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if opts.suiteFile != "" {
		return runSuite(ctx, opts, cfg, logger)
	}
	if opts.list {
		return listGames(cfg, logger)
	}
	return runPosition(opts, cfg, logger)
}

// loadConfig builds the configuration from the optional file and the flags.
func loadConfig(opts *options, fs *flag.FlagSet, stdout, stderr io.Writer) (*config.Config, error) {
	cfg := config.NewConfig()
	if opts.configFile != "" {
		loaded, err := config.Load(opts.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.SetOutput(stdout)
	cfg.SetLog(stderr)
	applyFlags(cfg, opts, fs)

	if opts.logFile != "" {
		file, err := os.Create(opts.logFile)
		if err != nil {
			return nil, chesserrors.Wrapf(err, "create log file %s", opts.logFile)
		}
		cfg.SetLog(file)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runSuite runs a position suite and writes one report per evaluated case.
func runSuite(ctx context.Context, opts *options, cfg *config.Config, logger *log.Logger) int {
	cases, err := suite.Load(opts.suiteFile)
	if err != nil {
		logger.Printf("%v", err)
		return exitUsage
	}

	outcomes, summary := suite.Run(ctx, cases, cfg, logger)

	w := output.NewWriter(cfg.OutputFile, cfg)
	for _, o := range outcomes {
		if o.Report == nil {
			if !o.Skipped && cfg.Verbosity > 0 {
				logger.Printf("%s: %v", o.Case.Name, o.Err)
			}
			continue
		}
		if err := w.WriteReport(o.Report); err != nil {
			logger.Printf("write report: %v", err)
			return exitFailure
		}
	}
	if err := w.Close(); err != nil {
		logger.Printf("write reports: %v", err)
		return exitFailure
	}

	if !summary.OK() {
		return exitFailure
	}
	return exitOK
}

// runPosition analyses a single position, optionally resumed from and
// saved back to the session store.
func runPosition(opts *options, cfg *config.Config, logger *log.Logger) int {
	var store storage.Store
	if cfg.Storage.Enabled() {
		var err error
		store, err = openStore(cfg, logger)
		if err != nil {
			logger.Printf("%v", err)
			return exitFailure
		}
		defer store.Close() //nolint:errcheck // read-mostly store
	}

	g, err := startGame(opts, cfg, store, logger)
	if err != nil {
		logger.Printf("%v", err)
		return exitFailure
	}

	if opts.moves != "" {
		g, err = g.PlayMoves(opts.moves)
		if err != nil {
			logger.Printf("%v", err)
			return exitFailure
		}
	}

	var name string
	if store != nil {
		name = cfg.Storage.GameID
	}
	report := output.NewPositionReport(name, g.Board, g.SideToMove)
	if len(g.Moves) > 0 {
		report.History = g.History()
	}

	if opts.square != "" {
		sq, ok := chess.ParseSquare(opts.square)
		if !ok {
			logger.Printf("%v", chesserrors.Wrapf(chesserrors.ErrInvalidSquare, "%q", opts.square))
			return exitUsage
		}
		if err := report.AddTargets(sq); err != nil {
			logger.Printf("%v", err)
			return exitFailure
		}
	}
	if opts.perft > 0 {
		report.AddPerft(opts.perft, opts.divide)
	}

	w := singleReportWriter(cfg)
	if err := w.WriteReport(report); err != nil {
		logger.Printf("write report: %v", err)
		return exitFailure
	}
	if err := w.Close(); err != nil {
		logger.Printf("write report: %v", err)
		return exitFailure
	}

	if store != nil {
		if err := store.Save(storage.NewSnapshot(cfg.Storage.GameID, g)); err != nil {
			logger.Printf("save game %s: %v", cfg.Storage.GameID, err)
			return exitFailure
		}
		if cfg.Verbosity > 1 {
			logger.Printf("saved game %s after %d plies", cfg.Storage.GameID, g.Ply())
		}
	}
	return exitOK
}

// startGame returns the game to analyse: the -fen position when given,
// otherwise the stored game, otherwise the initial position.
func startGame(opts *options, cfg *config.Config, store storage.Store, logger *log.Logger) (game.GameState, error) {
	id := cfg.Storage.GameID

	if store != nil && opts.reset {
		err := store.Delete(id)
		if err != nil && !errors.Is(err, chesserrors.ErrGameNotFound) {
			return game.GameState{}, err
		}
		if cfg.Verbosity > 1 {
			logger.Printf("reset game %s", id)
		}
	}

	if opts.fen != "" {
		return game.FromFEN(opts.fen)
	}

	if store != nil {
		snap, err := store.Load(id)
		switch {
		case err == nil:
			if cfg.Verbosity > 1 {
				logger.Printf("resumed game %s at ply %d", id, len(snap.Moves))
			}
			return snap.Game()
		case !errors.Is(err, chesserrors.ErrGameNotFound):
			return game.GameState{}, err
		}
	}
	return game.New(), nil
}

// listGames prints the ids of all stored games.
func listGames(cfg *config.Config, logger *log.Logger) int {
	if !cfg.Storage.Enabled() {
		logger.Printf("-list needs a session store (-store or -driver memory)")
		return exitUsage
	}
	store, err := openStore(cfg, logger)
	if err != nil {
		logger.Printf("%v", err)
		return exitFailure
	}
	defer store.Close() //nolint:errcheck // read-only

	ids, err := store.List()
	if err != nil {
		logger.Printf("%v", err)
		return exitFailure
	}
	for _, id := range ids {
		fmt.Fprintln(cfg.OutputFile, id)
	}
	return exitOK
}

// singleReportWriter writes a lone report. JSON output is the report
// object itself rather than a positions list.
func singleReportWriter(cfg *config.Config) output.ReportWriter {
	if cfg.Output.Format == config.JSON {
		return output.NewJSONWriterSingle(cfg.OutputFile, cfg)
	}
	return output.NewTextWriter(cfg.OutputFile, cfg)
}

func openStore(cfg *config.Config, logger *log.Logger) (storage.Store, error) {
	storeLog := logger
	if cfg.Verbosity < 2 {
		storeLog = nil
	}
	return storage.Open(cfg.Storage.Driver, cfg.Storage.Path, storeLog)
}

func usage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, "Usage: chess-rules [options]\n\n")
	fmt.Fprintf(w, "Analyse a chess position, play moves or run a position suite.\n\n")
	fmt.Fprintf(w, "Options:\n")
	fs.PrintDefaults()
	fmt.Fprintf(w, "\nExamples:\n")
	fmt.Fprintf(w, "  chess-rules -moves \"e2e4 e7e5\" -square g1\n")
	fmt.Fprintf(w, "  chess-rules -fen \"7k/5Q2/6K1/8/8/8/8/8 b\" -noboard\n")
	fmt.Fprintf(w, "  chess-rules -perft 3 -divide\n")
	fmt.Fprintf(w, "  chess-rules -suite positions.yaml -j 4\n")
	fmt.Fprintf(w, "  chess-rules -store games -game club -moves e2e4\n")
}
