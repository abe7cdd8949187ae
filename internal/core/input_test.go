package core

import "testing"

func TestAnswerActions(t *testing.T) {
	for i := 0; i < MaxAnswers; i++ {
		a := AnswerAction(i)
		idx, ok := a.AnswerIndex()
		if !ok || idx != i {
			t.Errorf("AnswerAction(%d).AnswerIndex() = (%d, %v), expected (%d, true)", i, idx, ok, i)
		}
	}

	if AnswerAction(MaxAnswers) != ActionNone {
		t.Error("AnswerAction out of range should be ActionNone")
	}
	if _, ok := ActionFeed.AnswerIndex(); ok {
		t.Error("ActionFeed is not an answer action")
	}
}

func TestInputFrameAnswer(t *testing.T) {
	f := NewInputFrame()
	if _, ok := f.Answer(); ok {
		t.Error("empty frame should have no answer")
	}

	f.Set(ActionAnswer4)
	f.Set(ActionAnswer2)
	idx, ok := f.Answer()
	if !ok || idx != 1 {
		t.Errorf("Answer() = (%d, %v), expected (1, true)", idx, ok)
	}

	f.Clear()
	if f.Has(ActionAnswer2) {
		t.Error("Clear should reset actions")
	}
}

func TestActionString(t *testing.T) {
	if ActionFeed.String() != "Feed" {
		t.Errorf("ActionFeed.String() = %q", ActionFeed.String())
	}
	if Action(999).String() != "Unknown" {
		t.Errorf("unknown action should stringify as Unknown")
	}
}
