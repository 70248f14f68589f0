package rules

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidRule is returned when a rulestring cannot be parsed
var ErrInvalidRule = errors.New("invalid rule")

// Rule describes a life-like transition rule in birth/survival form.
// Birth[n] reports whether a dead cell with n live neighbours becomes live,
// Survive[n] whether a live cell with n live neighbours stays live.
type Rule struct {
	Birth   [9]bool
	Survive [9]bool
}

// Conway is the standard B3/S23 rule
var Conway = Rule{
	Birth:   [9]bool{3: true},
	Survive: [9]bool{2: true, 3: true},
}

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

Conway's Game of Life rules: (alive && neighbors == 2) || neighbors == 3
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	return (alive && neighbors == 2) || neighbors == 3
}

// Apply returns the next state of a cell given its live neighbour count
func (r Rule) Apply(neighbors int, alive bool) bool {
	if neighbors < 0 || neighbors > 8 {
		return false
	}
	if alive {
		return r.Survive[neighbors]
	}
	return r.Birth[neighbors]
}

// String renders the rule in B/S notation, e.g. "B3/S23"
func (r Rule) String() string {
	var sb strings.Builder
	sb.WriteByte('B')
	for n, ok := range r.Birth {
		if ok {
			sb.WriteByte(byte('0' + n))
		}
	}
	sb.WriteString("/S")
	for n, ok := range r.Survive {
		if ok {
			sb.WriteByte(byte('0' + n))
		}
	}
	return sb.String()
}

// ParseRule parses a case-insensitive rulestring of the form "B3/S23".
// Either digit list may be empty.
func ParseRule(s string) (Rule, error) {
	var r Rule
	parts := strings.Split(strings.ToUpper(strings.TrimSpace(s)), "/")
	if len(parts) != 2 {
		return r, errors.Wrapf(ErrInvalidRule, "[ParseRule] expected B<digits>/S<digits>, got %q", s)
	}
	if err := parseDigits(parts[0], 'B', &r.Birth); err != nil {
		return Rule{}, errors.Wrapf(err, "[ParseRule] birth part of %q", s)
	}
	if err := parseDigits(parts[1], 'S', &r.Survive); err != nil {
		return Rule{}, errors.Wrapf(err, "[ParseRule] survival part of %q", s)
	}
	return r, nil
}

func parseDigits(part string, prefix byte, dst *[9]bool) error {
	if len(part) == 0 || part[0] != prefix {
		return errors.Wrapf(ErrInvalidRule, "missing %q prefix", prefix)
	}
	for _, c := range part[1:] {
		if c < '0' || c > '8' {
			return errors.Wrapf(ErrInvalidRule, "neighbour count %q out of range 0-8", c)
		}
		dst[c-'0'] = true
	}
	return nil
}
