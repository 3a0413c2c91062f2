package tui

import "testing"

func TestWrapTextBreaksAtWordBoundaries(t *testing.T) {
	got := wrapText("what is the capital of France", 10)
	want := "what is\nthe\ncapital of\nFrance"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWrapTextShortLineUnchanged(t *testing.T) {
	if got := wrapText("short", 20); got != "short" {
		t.Fatalf("got %q", got)
	}
}

func TestWrapTextLongWordStaysOnOwnLine(t *testing.T) {
	got := wrapText("a deoxyribonucleic b", 5)
	want := "a\ndeoxyribonucleic\nb"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWrapTextZeroWidthIsPassthrough(t *testing.T) {
	if got := wrapText("a b", 0); got != "a b" {
		t.Fatalf("got %q", got)
	}
}

func TestWrapTextEmpty(t *testing.T) {
	if got := wrapText("   ", 10); got != "" {
		t.Fatalf("got %q", got)
	}
}
