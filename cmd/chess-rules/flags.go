// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"io"

	"github.com/lgbarn/chess-rules-go/internal/config"
)

// options holds the parsed command line.
type options struct {
	// Position
	fen    string
	moves  string
	square string
	perft  int
	divide bool

	// Position suite
	suiteFile string
	workers   int
	failFast  bool

	// Session store
	storePath string
	driver    string
	gameID    string
	list      bool
	reset     bool

	// Output
	configFile string
	jsonOutput bool
	lineLength uint
	noBoard    bool
	noMoves    bool

	// Logging
	verbosity int
	logFile   string
	quiet     bool

	version bool
}

// newFlagSet defines every flag on a new FlagSet bound to opts.
func newFlagSet(opts *options, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("chess-rules", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.fen, "fen", "", "Position to analyse (default: the initial position)")
	fs.StringVar(&opts.moves, "moves", "", "Coordinate moves to play first, e.g. \"e2e4 e7e5\"")
	fs.StringVar(&opts.square, "square", "", "List the legal destinations of the piece on this square")
	fs.IntVar(&opts.perft, "perft", 0, "Count leaf nodes of the legal move tree to depth N")
	fs.BoolVar(&opts.divide, "divide", false, "Split the perft count by first move")

	fs.StringVar(&opts.suiteFile, "suite", "", "Run a YAML position suite")
	fs.IntVar(&opts.workers, "j", 0, "Suite workers (default: number of CPUs)")
	fs.BoolVar(&opts.failFast, "failfast", false, "Stop the suite at the first failure")

	fs.StringVar(&opts.storePath, "store", "", "Session store location (directory for badger, file for sqlite)")
	fs.StringVar(&opts.driver, "driver", "", "Session store driver: badger, sqlite or memory")
	fs.StringVar(&opts.gameID, "game", "", "Stored game to resume and update")
	fs.BoolVar(&opts.list, "list", false, "List stored games")
	fs.BoolVar(&opts.reset, "reset", false, "Delete the stored game before starting")

	fs.StringVar(&opts.configFile, "config", "", "YAML configuration file")
	fs.BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	fs.UintVar(&opts.lineLength, "w", 80, "Maximum line length")
	fs.BoolVar(&opts.noBoard, "noboard", false, "Don't print the board diagram")
	fs.BoolVar(&opts.noMoves, "nomoves", false, "Don't list every legal move")

	fs.IntVar(&opts.verbosity, "v", 1, "Verbosity: 0=nothing, 1=summary, 2=running commentary")
	fs.StringVar(&opts.logFile, "l", "", "Write diagnostics to log file")
	fs.BoolVar(&opts.quiet, "s", false, "Silent mode (same as -v 0)")

	fs.BoolVar(&opts.version, "version", false, "Show version")

	return fs
}

// applyFlags applies the flags given on the command line over cfg, so that
// values from a configuration file survive unless overridden.
func applyFlags(cfg *config.Config, opts *options, fs *flag.FlagSet) {
	b := config.NewConfigBuilderFrom(cfg)

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "json":
			b.WithJSONOutput(opts.jsonOutput)
		case "w":
			b.WithMaxLineLength(opts.lineLength)
		case "noboard":
			b.ShowBoard(!opts.noBoard)
		case "nomoves":
			b.ListMoves(!opts.noMoves)
		case "store":
			cfg.Storage.Path = opts.storePath
		case "driver":
			cfg.Storage.Driver = opts.driver
		case "game":
			b.WithGameID(opts.gameID)
		case "j":
			b.WithWorkers(opts.workers)
		case "failfast":
			b.WithFailFast(opts.failFast)
		case "v":
			b.WithVerbosity(opts.verbosity)
		}
	})

	if opts.quiet {
		b.WithVerbosity(0)
	}
}
