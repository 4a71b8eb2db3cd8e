package core

import "testing"

func TestInputFrameSetHasClear(t *testing.T) {
	f := NewInputFrame()
	if f.Has(ActionSelect) {
		t.Fatal("new frame should have no actions")
	}

	f.Set(ActionSelect)
	f.Click(3, 4)
	f.Click(5, 6)

	if !f.Has(ActionSelect) {
		t.Error("Select should be set")
	}
	if len(f.Clicks) != 2 || f.Clicks[0] != (Point{X: 3, Y: 4}) {
		t.Errorf("Clicks = %v, expected two clicks in order", f.Clicks)
	}

	f.Clear()
	if f.Has(ActionSelect) || len(f.Clicks) != 0 {
		t.Error("Clear should reset actions and clicks")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionQuit) {
		t.Error("zero frame should report no actions")
	}
	f.Set(ActionQuit)
	if !f.Has(ActionQuit) {
		t.Error("Set on zero frame should allocate")
	}
}

func TestActionString(t *testing.T) {
	if ActionSelect.String() != "Select" {
		t.Errorf("ActionSelect.String() = %q", ActionSelect.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("unknown action should stringify as Unknown")
	}
}
