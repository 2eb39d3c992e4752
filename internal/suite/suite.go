// Package suite loads YAML position suites and checks the engine's verdict
// on each position against the expected one.
//
// A suite file is a list of cases:
//
//	- name: fool's mate
//	  fen: rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w - - 0 1
//	  expect:
//	    status: checkmate
//	    in_check: true
//	    legal_moves: 0
//
// A case may give moves to play from the FEN before the check, and may
// expect an exact set of legal moves or a perft node count.
package suite

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/game"
)

// MaxPerftDepth bounds the perft depth a case may ask for.
const MaxPerftDepth = 5

// Case is a single position and what the engine should say about it.
type Case struct {
	Name   string `yaml:"name"`
	FEN    string `yaml:"fen"`
	Moves  string `yaml:"moves,omitempty"`
	Expect Expect `yaml:"expect"`

	// Line is where the case starts in its file.
	Line int `yaml:"-"`
}

// Expect lists the checks for a case. Unset fields are not checked.
type Expect struct {
	Status     string       `yaml:"status,omitempty"`
	InCheck    *bool        `yaml:"in_check,omitempty"`
	LegalMoves *int         `yaml:"legal_moves,omitempty"`
	Moves      []string     `yaml:"moves,omitempty"`
	Perft      *PerftExpect `yaml:"perft,omitempty"`
}

// PerftExpect is an expected perft node count.
type PerftExpect struct {
	Depth int    `yaml:"depth"`
	Nodes uint64 `yaml:"nodes"`
}

var (
	caseKeys   = []string{"name", "fen", "moves", "expect"}
	expectKeys = []string{"status", "in_check", "legal_moves", "moves", "perft"}
	perftKeys  = []string{"depth", "nodes"}
)

// Load reads and validates a suite file.
func Load(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read suite %s", path)
	}
	return Parse(data, path)
}

// Parse decodes and validates suite data. file is used in error messages.
func Parse(data []byte, file string) ([]Case, error) {
	var root yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&root); err != nil {
		if err == io.EOF {
			return nil, &errors.ParseError{Err: errors.ErrInvalidSuite, File: file, Expected: "list of positions", Got: "empty document"}
		}
		return nil, &errors.ParseError{Err: errors.ErrInvalidSuite, File: file, Got: err.Error()}
	}

	list := &root
	if list.Kind == yaml.DocumentNode && len(list.Content) > 0 {
		list = list.Content[0]
	}
	if list.Kind != yaml.SequenceNode {
		return nil, &errors.ParseError{Err: errors.ErrInvalidSuite, File: file, Line: list.Line, Expected: "list of positions", Got: list.Tag}
	}

	cases := make([]Case, 0, len(list.Content))
	seen := make(map[string]int)
	for i, item := range list.Content {
		c, err := decodeCase(item, i)
		if err != nil {
			if parseErr, ok := err.(*errors.ParseError); ok {
				parseErr.File = file
			}
			return nil, err
		}
		if prev, found := seen[c.Name]; found {
			return nil, &errors.ParseError{
				Err:  errors.ErrInvalidSuite,
				File: file,
				Line: c.Line,
				Got:  fmt.Sprintf("duplicate name %q (first at line %d)", c.Name, prev),
			}
		}
		seen[c.Name] = c.Line
		cases = append(cases, c)
	}
	return cases, nil
}

func decodeCase(node *yaml.Node, index int) (Case, error) {
	if err := checkKeys(node, caseKeys); err != nil {
		return Case{}, err
	}
	if expect := mappingValue(node, "expect"); expect != nil {
		if err := checkKeys(expect, expectKeys); err != nil {
			return Case{}, err
		}
		if perft := mappingValue(expect, "perft"); perft != nil {
			if err := checkKeys(perft, perftKeys); err != nil {
				return Case{}, err
			}
		}
	}

	var c Case
	if err := node.Decode(&c); err != nil {
		return Case{}, &errors.ParseError{Err: errors.ErrInvalidSuite, Line: node.Line, Got: err.Error()}
	}
	c.Line = node.Line
	if c.Name == "" {
		c.Name = fmt.Sprintf("position %d", index+1)
	}
	if err := c.Validate(); err != nil {
		return Case{}, err
	}
	return c, nil
}

// checkKeys rejects mapping keys outside allowed.
func checkKeys(node *yaml.Node, allowed []string) error {
	if node.Kind != yaml.MappingNode {
		return &errors.ParseError{Err: errors.ErrInvalidSuite, Line: node.Line, Expected: "mapping", Got: node.Tag}
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if !slices.Contains(allowed, key.Value) {
			return &errors.ParseError{Err: errors.ErrInvalidSuite, Line: key.Line, Got: fmt.Sprintf("unknown field %q", key.Value)}
		}
	}
	return nil
}

// mappingValue returns the value node for key, or nil.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// Validate checks a case for problems that can be found without playing
// its moves.
func (c *Case) Validate() error {
	invalid := func(expected, got string) error {
		return &errors.ParseError{Err: errors.ErrInvalidSuite, Line: c.Line, Expected: expected, Got: got}
	}

	if c.FEN == "" {
		return invalid("fen", fmt.Sprintf("nothing in case %q", c.Name))
	}
	if _, _, err := engine.NewBoardFromFEN(c.FEN); err != nil {
		return &errors.ParseError{Err: err, Line: c.Line, Got: fmt.Sprintf("fen of case %s", c.Name)}
	}

	e := c.Expect
	if e.Status != "" {
		if _, ok := engine.ParseStatusKind(e.Status); !ok {
			return invalid("in_progress, check, checkmate or stalemate", fmt.Sprintf("status %q", e.Status))
		}
	}
	if e.LegalMoves != nil && *e.LegalMoves < 0 {
		return invalid("non-negative legal_moves", fmt.Sprint(*e.LegalMoves))
	}
	for _, m := range e.Moves {
		if _, ok := chess.ParseMove(m); !ok {
			return invalid("coordinate move", fmt.Sprintf("%q", m))
		}
	}
	if e.Perft != nil && (e.Perft.Depth < 1 || e.Perft.Depth > MaxPerftDepth) {
		return invalid(fmt.Sprintf("perft depth 1-%d", MaxPerftDepth), fmt.Sprint(e.Perft.Depth))
	}
	return nil
}

// Position returns the game reached by playing the case's moves from its
// FEN.
func (c *Case) Position() (game.GameState, error) {
	g, err := game.FromFEN(c.FEN)
	if err != nil {
		return game.GameState{}, err
	}
	if c.Moves == "" {
		return g, nil
	}
	return g.PlayMoves(c.Moves)
}
