package multiplexer

import (
	"errors"
	"testing"
)

func TestIsMissingSessionError(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{errors.New("tmux capture-pane failed for 'grove-ws-feature-a': can't find pane"), true},
		{errors.New("can't find session: grove-ws-x"), true},
		{errors.New("no server running on /tmp/tmux-0/default"), true},
		{errors.New("some other failure"), false},
		{nil, false},
	}
	for _, c := range cases {
		if got := IsMissingSessionError(c.err); got != c.want {
			t.Errorf("IsMissingSessionError(%v) = %v, want %v", c.err, got, c.want)
		}
	}
}

func TestIsDuplicateSessionError(t *testing.T) {
	if !IsDuplicateSessionError(errors.New("duplicate session: grove-ws-a")) {
		t.Error("expected duplicate session error to be detected")
	}
	if IsDuplicateSessionError(errors.New("some other error")) {
		t.Error("did not expect duplicate session match")
	}
}
