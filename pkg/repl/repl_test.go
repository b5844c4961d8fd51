package repl

import "testing"

func TestParenDeltaBalancesAcrossLines(t *testing.T) {
	inString := false
	if got := parenDelta(`(foo (bar`, &inString); got != 2 {
		t.Errorf("parenDelta = %d, want 2", got)
	}
	if got := parenDelta(`baz))`, &inString); got != -2 {
		t.Errorf("parenDelta = %d, want -2", got)
	}
}

func TestParenDeltaIgnoresParensInStrings(t *testing.T) {
	inString := false
	if got := parenDelta(`(print "(unbalanced")`, &inString); got != 0 {
		t.Errorf("parenDelta = %d, want 0, got inString=%v", got, inString)
	}
	if inString {
		t.Error("expected to exit the string literal by end of line")
	}
}

func TestParenDeltaStopsAtComment(t *testing.T) {
	inString := false
	if got := parenDelta(`(foo) # (bar`, &inString); got != 0 {
		t.Errorf("parenDelta = %d, want 0 (comment should not count trailing parens)", got)
	}
}

func TestParenDeltaTracksMultilineStrings(t *testing.T) {
	inString := false
	parenDelta(`(print "opens`, &inString)
	if !inString {
		t.Fatal("expected inString to carry across lines when a string is left open")
	}
	if got := parenDelta(`still a string")`, &inString); got != -1 {
		t.Errorf("parenDelta = %d, want -1", got)
	}
}
