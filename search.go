package term

import (
	"regexp"
)

// SearchMatch locates one hit within the terminal's combined scrollback+screen text.
// Row follows the same convention as Position: negative rows index into scrollback
// (-1 is the most recent scrollback line), zero and positive rows index the viewport.
type SearchMatch struct {
	Row    int
	Col    int
	Length int
}

// SearchOptions controls how Find matches text.
type SearchOptions struct {
	Regex         bool // interpret Pattern as an RE2 regular expression instead of a literal
	CaseSensitive bool
}

// cellsToRunes converts a scrollback or screen line to runes, treating empty cells as
// spaces and skipping wide-char spacer cells.
func cellsToRunes(cells []Cell) []rune {
	runes := make([]rune, 0, len(cells))
	for _, cell := range cells {
		if cell.IsWideSpacer() {
			continue
		}
		if cell.Char == 0 {
			runes = append(runes, ' ')
		} else {
			runes = append(runes, cell.Char)
		}
	}
	return runes
}

func findLiteral(haystack []rune, needle []rune, caseSensitive bool) []SearchMatch {
	if len(needle) == 0 || len(haystack) < len(needle) {
		return nil
	}
	var matches []SearchMatch
	for col := 0; col <= len(haystack)-len(needle); col++ {
		found := true
		for i, nr := range needle {
			hr := haystack[col+i]
			if !caseSensitive {
				hr = toLowerRune(hr)
				nr = toLowerRune(nr)
			}
			if hr != nr {
				found = false
				break
			}
		}
		if found {
			matches = append(matches, SearchMatch{Col: col, Length: len(needle)})
			// Overlapping matches: advance by 1, not len(needle), so "aa" matches twice in "aaa".
		}
	}
	return matches
}

func toLowerRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// Find searches the visible screen and, if includeScrollback is true, the scrollback
// buffer for pattern, returning every match in top-to-bottom, left-to-right order.
func (t *Terminal) Find(pattern string, opts SearchOptions, includeScrollback bool) []SearchMatch {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if pattern == "" {
		return nil
	}

	var re *regexp.Regexp
	if opts.Regex {
		expr := pattern
		if !opts.CaseSensitive {
			expr = "(?i)" + expr
		}
		compiled, err := regexp.Compile(expr)
		if err != nil {
			return nil
		}
		re = compiled
	}

	var matches []SearchMatch

	if includeScrollback {
		scrollbackLen := t.primaryBuffer.ScrollbackLen()
		for i := 0; i < scrollbackLen; i++ {
			line := t.primaryBuffer.ScrollbackLine(i)
			if line == nil {
				continue
			}
			row := -(scrollbackLen - i)
			matches = append(matches, searchLine(cellsToRunes(line), row, pattern, re, opts.CaseSensitive)...)
		}
	}

	for row := 0; row < t.rows; row++ {
		line := make([]Cell, t.cols)
		for col := 0; col < t.cols; col++ {
			if c := t.activeBuffer.Cell(row, col); c != nil {
				line[col] = *c
			}
		}
		matches = append(matches, searchLine(cellsToRunes(line), row, pattern, re, opts.CaseSensitive)...)
	}

	return matches
}

func searchLine(runes []rune, row int, pattern string, re *regexp.Regexp, caseSensitive bool) []SearchMatch {
	var matches []SearchMatch
	if re != nil {
		line := string(runes)
		for _, loc := range re.FindAllStringIndex(line, -1) {
			col := len([]rune(line[:loc[0]]))
			length := len([]rune(line[loc[0]:loc[1]]))
			matches = append(matches, SearchMatch{Row: row, Col: col, Length: length})
		}
		return matches
	}
	for _, m := range findLiteral(runes, []rune(pattern), caseSensitive) {
		m.Row = row
		matches = append(matches, m)
	}
	return matches
}

// Search finds all occurrences of pattern (a case-sensitive literal) in the visible
// screen content. Kept for callers that only need plain on-screen search.
func (t *Terminal) Search(pattern string) []Position {
	return toPositions(t.Find(pattern, SearchOptions{CaseSensitive: true}, false))
}

// SearchScrollback finds all occurrences of pattern (a case-sensitive literal) in
// scrollback lines. Returned row values are negative, where -1 is most recent.
func (t *Terminal) SearchScrollback(pattern string) []Position {
	t.mu.RLock()
	scrollbackLen := t.primaryBuffer.ScrollbackLen()
	t.mu.RUnlock()
	if scrollbackLen == 0 {
		return nil
	}

	all := t.Find(pattern, SearchOptions{CaseSensitive: true}, true)
	var positions []Position
	for _, m := range all {
		if m.Row < 0 {
			positions = append(positions, Position{Row: m.Row, Col: m.Col})
		}
	}
	return positions
}

func toPositions(matches []SearchMatch) []Position {
	if len(matches) == 0 {
		return nil
	}
	positions := make([]Position, len(matches))
	for i, m := range matches {
		positions[i] = Position{Row: m.Row, Col: m.Col}
	}
	return positions
}
