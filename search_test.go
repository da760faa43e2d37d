package term

import "testing"

func TestFindLiteralOnScreen(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("Hello World\r\nHello Again\r\n")

	positions := term.Search("Hello")
	if len(positions) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(positions))
	}
	if positions[0].Row != 0 || positions[0].Col != 0 {
		t.Errorf("expected first match at (0,0), got (%d,%d)", positions[0].Row, positions[0].Col)
	}
	if positions[1].Row != 1 || positions[1].Col != 0 {
		t.Errorf("expected second match at (1,0), got (%d,%d)", positions[1].Row, positions[1].Col)
	}
}

func TestFindLiteralCaseInsensitive(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("Hello World")

	matches := term.Find("hello", SearchOptions{CaseSensitive: false}, false)
	if len(matches) != 1 {
		t.Fatalf("expected 1 case-insensitive match, got %d", len(matches))
	}

	matches = term.Find("hello", SearchOptions{CaseSensitive: true}, false)
	if len(matches) != 0 {
		t.Errorf("expected 0 case-sensitive matches for wrong case, got %d", len(matches))
	}
}

func TestFindOverlappingMatches(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("aaa")

	matches := term.Find("aa", SearchOptions{CaseSensitive: true}, false)
	if len(matches) != 2 {
		t.Fatalf("expected 2 overlapping matches in 'aaa', got %d", len(matches))
	}
	if matches[0].Col != 0 || matches[1].Col != 1 {
		t.Errorf("expected matches at columns 0 and 1, got %d and %d", matches[0].Col, matches[1].Col)
	}
}

func TestFindRegex(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("port 8080 and port 4040")

	matches := term.Find(`\d+`, SearchOptions{Regex: true, CaseSensitive: true}, false)
	if len(matches) != 2 {
		t.Fatalf("expected 2 regex matches, got %d", len(matches))
	}
	if matches[0].Length != 4 || matches[1].Length != 4 {
		t.Errorf("expected both matches to be length 4, got %d and %d", matches[0].Length, matches[1].Length)
	}
}

func TestFindInvalidRegexReturnsNil(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("text")

	matches := term.Find(`(unclosed`, SearchOptions{Regex: true}, false)
	if matches != nil {
		t.Errorf("expected nil for an invalid regex pattern, got %v", matches)
	}
}

func TestFindEmptyPatternReturnsNil(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("text")

	if matches := term.Find("", SearchOptions{}, false); matches != nil {
		t.Errorf("expected nil for an empty pattern, got %v", matches)
	}
}

func TestSearchScrollback(t *testing.T) {
	storage := &testScrollback{lines: make([][]Cell, 0)}
	storage.SetMaxLines(100)

	term := New(WithSize(5, 80), WithScrollback(storage))

	for i := 0; i < 10; i++ {
		term.WriteString("needle line\r\n")
	}

	positions := term.SearchScrollback("needle")
	if len(positions) == 0 {
		t.Fatal("expected at least one scrollback match")
	}
	for _, p := range positions {
		if p.Row >= 0 {
			t.Errorf("expected all SearchScrollback rows to be negative, got %d", p.Row)
		}
	}
}

func TestFindIncludesScrollbackWhenRequested(t *testing.T) {
	storage := &testScrollback{lines: make([][]Cell, 0)}
	storage.SetMaxLines(100)

	term := New(WithSize(5, 80), WithScrollback(storage))
	for i := 0; i < 10; i++ {
		term.WriteString("marker\r\n")
	}

	withScrollback := term.Find("marker", SearchOptions{CaseSensitive: true}, true)
	withoutScrollback := term.Find("marker", SearchOptions{CaseSensitive: true}, false)

	if len(withScrollback) <= len(withoutScrollback) {
		t.Errorf("expected more matches when including scrollback: with=%d without=%d", len(withScrollback), len(withoutScrollback))
	}
}
