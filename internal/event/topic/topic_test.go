package topic

import "testing"

func TestMatches(t *testing.T) {
	tests := []struct {
		topic   Topic
		pattern Topic
		want    bool
	}{
		{"history.state.changed", "history.state.changed", true},
		{"history.state.changed", "history.state.*", true},
		{"history.state.changed", "history.*", false},
		{"history.state.changed", "history.**", true},
		{"history.state.changed", "**", true},
		{"history.cleared", "history.*", true},
		{"history.command.executed", "history.command.*", true},
		{"history.command.executed", "*.command.executed", true},
		{"deck.entry.added", "history.**", false},
		{"deck.entry.count.changed", "deck.entry.**", true},
		{"deck", "deck.**", true},
		{"deck", "deck.*", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.topic)+" vs "+string(tt.pattern), func(t *testing.T) {
			if got := tt.topic.Matches(tt.pattern); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.topic, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		topic Topic
		want  bool
	}{
		{"history.state.changed", true},
		{"history", true},
		{"history.**", true},
		{"", false},
		{".history", false},
		{"history.", false},
		{"history..state", false},
	}

	for _, tt := range tests {
		if got := tt.topic.IsValid(); got != tt.want {
			t.Errorf("IsValid(%q) = %v, want %v", tt.topic, got, tt.want)
		}
	}
}

func TestParentChildBase(t *testing.T) {
	tp := Topic("history.state.changed")

	if got := tp.Parent(); got != "history.state" {
		t.Errorf("Parent = %q", got)
	}
	if got := tp.Base(); got != "changed" {
		t.Errorf("Base = %q", got)
	}
	if got := Topic("history").Child("cleared"); got != "history.cleared" {
		t.Errorf("Child = %q", got)
	}
	if got := Topic("history").Parent(); got != "" {
		t.Errorf("Parent of root = %q, want empty", got)
	}
}

func TestHasPrefix(t *testing.T) {
	tp := Topic("history.state.changed")

	if !tp.HasPrefix("history") {
		t.Error("expected prefix match on segment boundary")
	}
	if !tp.HasPrefix("history.state") {
		t.Error("expected prefix match on two segments")
	}
	if Topic("historical.note").HasPrefix("history") {
		t.Error("prefix must end on a segment boundary")
	}
}

func TestJoin(t *testing.T) {
	if got := Join("deck", "entry", "added"); got != "deck.entry.added" {
		t.Errorf("Join = %q", got)
	}
}
