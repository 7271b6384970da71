package syntax

import (
	"strings"
	"testing"
)

func TestSourceBasic(t *testing.T) {
	src := newSource("test", strings.NewReader("abc"), nil)

	for i, want := range []rune{'a', 'b', 'c'} {
		if src.ch != want {
			t.Errorf("ch = %q, want %q", src.ch, want)
		}
		if src.line != 1 || src.col != uint32(i+1) {
			t.Errorf("pos = %d:%d, want 1:%d", src.line, src.col, i+1)
		}
		src.nextch()
	}

	if src.ch != -1 {
		t.Errorf("ch = %d, want -1 (EOF)", src.ch)
	}
}

func TestSourceNewline(t *testing.T) {
	src := newSource("test", strings.NewReader("a\nb\nc"), nil)

	want := []struct {
		ch        rune
		line, col uint32
	}{
		{'a', 1, 1},
		{'\n', 1, 2},
		{'b', 2, 1},
		{'\n', 2, 2},
		{'c', 3, 1},
	}
	for _, w := range want {
		if src.ch != w.ch || src.line != w.line || src.col != w.col {
			t.Errorf("got ch=%q pos=%d:%d, want ch=%q pos=%d:%d", src.ch, src.line, src.col, w.ch, w.line, w.col)
		}
		src.nextch()
	}
}

func TestSourceUTF8(t *testing.T) {
	src := newSource("test", strings.NewReader("a中b"), nil)

	src.nextch()
	if src.ch != '中' {
		t.Errorf("ch = %q, want '中'", src.ch)
	}
	src.nextch()
	if src.ch != 'b' || src.col != 3 {
		t.Errorf("got ch=%q col=%d, want 'b' col=3", src.ch, src.col)
	}
}

func TestSourcePeek(t *testing.T) {
	src := newSource("test", strings.NewReader("*>>"), nil)

	if src.ch != '*' {
		t.Fatalf("ch = %q, want '*'", src.ch)
	}
	if got := src.peek(); got != '>' {
		t.Errorf("peek() = %q, want '>'", got)
	}
	if src.ch != '*' {
		t.Errorf("peek consumed input: ch = %q", src.ch)
	}

	src.nextch()
	src.nextch()
	if got := src.peek(); got != -1 {
		t.Errorf("peek() at last char = %d, want -1", got)
	}
}

func TestSourceEmpty(t *testing.T) {
	src := newSource("test", strings.NewReader(""), nil)
	if src.ch != -1 {
		t.Errorf("ch = %d, want -1 (EOF)", src.ch)
	}
}

func TestSourcePos(t *testing.T) {
	src := newSource("main.chi", strings.NewReader("ab"), nil)

	pos := src.pos()
	if pos.Line() != 1 || pos.Col() != 1 || pos.Filename() != "main.chi" {
		t.Errorf("pos = %v, want main.chi:1:1", pos)
	}

	src.nextch()
	if pos = src.pos(); pos.Line() != 1 || pos.Col() != 2 {
		t.Errorf("pos = %v, want 1:2", pos)
	}
}

func TestSourceError(t *testing.T) {
	var errMsg string
	var errLine, errCol uint32
	errh := func(line, col uint32, msg string) {
		errLine, errCol, errMsg = line, col, msg
	}

	src := newSource("test", strings.NewReader("a"), errh)
	src.error("boom")

	if errMsg != "boom" {
		t.Errorf("error message = %q, want %q", errMsg, "boom")
	}
	if errLine != 1 || errCol != 1 {
		t.Errorf("error pos = %d:%d, want 1:1", errLine, errCol)
	}

	// nil handler must not panic
	newSource("test", strings.NewReader("a"), nil).error("ignored")
}

func TestCharClasses(t *testing.T) {
	for _, r := range []rune{'a', 'z', 'A', 'Z', '_'} {
		if !isLetter(r) {
			t.Errorf("isLetter(%q) = false, want true", r)
		}
	}
	for _, r := range []rune{'0', ' ', '+', '中'} {
		if isLetter(r) {
			t.Errorf("isLetter(%q) = true, want false", r)
		}
	}
	for _, r := range []rune{'0', '9', 'a', 'F'} {
		if !isHexDigit(r) {
			t.Errorf("isHexDigit(%q) = false, want true", r)
		}
	}
	for _, r := range []rune{'g', 'G', ' '} {
		if isHexDigit(r) {
			t.Errorf("isHexDigit(%q) = true, want false", r)
		}
	}
	for _, r := range []rune{' ', '\t', '\r', '\n'} {
		if !isWhitespace(r) {
			t.Errorf("isWhitespace(%q) = false, want true", r)
		}
	}
	for _, r := range []rune{'+', '*', '(', '}', ';', '!'} {
		if !isOperatorStart(r) {
			t.Errorf("isOperatorStart(%q) = false, want true", r)
		}
	}
	for _, r := range []rune{'a', '0', '.', ':', '^', '@'} {
		if isOperatorStart(r) {
			t.Errorf("isOperatorStart(%q) = true, want false", r)
		}
	}
}
