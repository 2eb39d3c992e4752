package chess

import "strings"

// Move is a source-destination square pair.
type Move struct {
	From Square
	To   Square
}

// String returns the move as two concatenated square names, e.g. "e2e4".
func (m Move) String() string {
	return m.From.String() + m.To.String()
}

// ParseMove parses a coordinate pair such as "e2e4" or "e2-e4".
func ParseMove(text string) (Move, bool) {
	text = strings.ReplaceAll(strings.TrimSpace(text), "-", "")
	if len(text) != 4 {
		return Move{}, false
	}
	from, ok := ParseSquare(text[:2])
	if !ok {
		return Move{}, false
	}
	to, ok := ParseSquare(text[2:])
	if !ok {
		return Move{}, false
	}
	return Move{From: from, To: to}, true
}
