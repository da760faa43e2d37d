package term

import "testing"

func TestDECRQMKnownPrivateModeSet(t *testing.T) {
	var responses []byte
	writer := &testWriter{data: &responses}
	term := New(WithSize(24, 80), WithResponse(writer))

	term.WriteString("\x1b[?7h") // enable DECAWM
	responses = nil
	term.WriteString("\x1b[?7$p")

	expected := "\x1b[?7;1$y"
	if string(responses) != expected {
		t.Errorf("expected %q, got %q", expected, responses)
	}
}

func TestDECRQMKnownPrivateModeReset(t *testing.T) {
	var responses []byte
	writer := &testWriter{data: &responses}
	term := New(WithSize(24, 80), WithResponse(writer))

	term.WriteString("\x1b[?7l") // disable DECAWM
	responses = nil
	term.WriteString("\x1b[?7$p")

	expected := "\x1b[?7;2$y"
	if string(responses) != expected {
		t.Errorf("expected %q, got %q", expected, responses)
	}
}

func TestDECRQMUnknownMode(t *testing.T) {
	var responses []byte
	writer := &testWriter{data: &responses}
	term := New(WithSize(24, 80), WithResponse(writer))

	term.WriteString("\x1b[?9999$p")

	expected := "\x1b[?9999;0$y"
	if string(responses) != expected {
		t.Errorf("expected %q, got %q", expected, responses)
	}
}

func TestDECRQMNonPrivateMode(t *testing.T) {
	var responses []byte
	writer := &testWriter{data: &responses}
	term := New(WithSize(24, 80), WithResponse(writer))

	term.WriteString("\x1b[4h") // enable IRM
	responses = nil
	term.WriteString("\x1b[4$p")

	expected := "\x1b[4;1$y"
	if string(responses) != expected {
		t.Errorf("expected %q, got %q", expected, responses)
	}
}

func TestXTVERSION(t *testing.T) {
	var responses []byte
	writer := &testWriter{data: &responses}
	term := New(WithSize(24, 80), WithResponse(writer))

	term.WriteString("\x1b[>q")

	expected := "\x1bP>|" + terminalVersion + "\x1b\\"
	if string(responses) != expected {
		t.Errorf("expected %q, got %q", expected, responses)
	}
}
