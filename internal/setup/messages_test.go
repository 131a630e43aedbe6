package setup

import (
	"strings"
	"testing"
)

func TestMessages_Total(t *testing.T) {
	for _, g := range Goals() {
		for _, tn := range Tones() {
			msg := CheckInMessage(g, tn)
			if strings.TrimSpace(msg) == "" {
				t.Errorf("empty message for %s/%s", g, tn)
			}
		}
		if FriendlyMessage(g) == DefaultFriendlyMessage {
			t.Errorf("%s should have its own friendly message", g)
		}
		if AggressiveMessage(g) == DefaultAggressiveMessage {
			t.Errorf("%s should have its own aggressive message", g)
		}
	}
}

func TestMessages_UnknownGoalDefaults(t *testing.T) {
	if got := FriendlyMessage("knitting"); got != "Hi there! 👋 How's your progress going?" {
		t.Errorf("friendly default = %q", got)
	}
	if got := AggressiveMessage("knitting"); got != "NO MORE DELAYS! What have you accomplished today?" {
		t.Errorf("aggressive default = %q", got)
	}
	if got := CheckInMessage("", ToneFriendly); got != DefaultFriendlyMessage {
		t.Errorf("empty goal should default, got %q", got)
	}
}

func TestCompletionMessage(t *testing.T) {
	if CompletionMessage(ToneFriendly) != FriendlyCompletion {
		t.Error("friendly completion mismatch")
	}
	if CompletionMessage(ToneAggressive) != AggressiveCompletion {
		t.Error("aggressive completion mismatch")
	}
	if CompletionMessage("") != AggressiveCompletion {
		t.Error("non-friendly tones use the aggressive completion")
	}
}

func TestLabels(t *testing.T) {
	if GoalSideHustle.Label() != "Side Hustle" {
		t.Errorf("got %q", GoalSideHustle.Label())
	}
	if ToneAggressive.Description() == "" {
		t.Error("tone description missing")
	}
	if !(Profile{Goal: GoalStudy, Tone: ToneFriendly}).Bag().Complete() {
		t.Error("profile bag should be complete")
	}
}
