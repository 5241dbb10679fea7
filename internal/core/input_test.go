package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionConfirm) || !f.Empty() {
		t.Error("zero InputFrame should be empty")
	}

	f.Set(ActionConfirm)
	f.Set(ActionLeft)
	if !f.Has(ActionConfirm) || !f.Has(ActionLeft) {
		t.Error("Set actions should be reported by Has")
	}
	if f.Has(ActionUndo) {
		t.Error("Has(ActionUndo) should be false")
	}

	f.Clear()
	if !f.Empty() {
		t.Error("Clear should remove all actions")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{ActionConfirm, "Confirm"},
		{ActionUndo, "Undo"},
		{ActionRight, "Right"},
		{Action(99), "Unknown"},
	}
	for _, tc := range tests {
		if got := tc.action.String(); got != tc.want {
			t.Errorf("Action(%d).String() = %q, want %q", tc.action, got, tc.want)
		}
	}
}
