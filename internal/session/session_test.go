package session

import (
	"testing"

	"github.com/okoshkin/trivtui/internal/model"
)

func effectTypes(effects []Effect) []string {
	names := make([]string, 0, len(effects))
	for _, eff := range effects {
		switch eff.(type) {
		case ShowIdentityEntry:
			names = append(names, "ShowIdentityEntry")
		case ShowDeck:
			names = append(names, "ShowDeck")
		case StartFetch:
			names = append(names, "StartFetch")
		case PersistIdentity:
			names = append(names, "PersistIdentity")
		case RecordScore:
			names = append(names, "RecordScore")
		case ClearDeck:
			names = append(names, "ClearDeck")
		case DeleteIdentity:
			names = append(names, "DeleteIdentity")
		case Alert:
			names = append(names, "Alert")
		case RefreshScoreboard:
			names = append(names, "RefreshScoreboard")
		}
	}
	return names
}

func hasEffect(effects []Effect, name string) bool {
	for _, n := range effectTypes(effects) {
		if n == name {
			return true
		}
	}
	return false
}

func TestLoadedWithIdentityYieldsReady(t *testing.T) {
	next, effects := Reduce(Session{}, Loaded{Username: "Ada", HasIdentity: true})
	if next.State != Ready {
		t.Fatalf("expected Ready, got %v", next.State)
	}
	if next.Username != "Ada" {
		t.Fatalf("expected username Ada, got %q", next.Username)
	}
	if !hasEffect(effects, "ShowDeck") || !hasEffect(effects, "StartFetch") {
		t.Fatalf("unexpected effects: %v", effectTypes(effects))
	}
	if hasEffect(effects, "ShowIdentityEntry") {
		t.Fatalf("identity entry must stay hidden when an identity exists")
	}
}

func TestLoadedWithIdentityIsIdempotent(t *testing.T) {
	// The Ready configuration must come out regardless of the prior state.
	for _, prior := range []Session{{}, {State: Ready, Username: "Old"}} {
		next, _ := Reduce(prior, Loaded{Username: "Ada", HasIdentity: true})
		if next.State != Ready || next.Username != "Ada" {
			t.Fatalf("prior %+v: expected Ready/Ada, got %+v", prior, next)
		}
	}
}

func TestLoadedWithoutIdentityShowsEntry(t *testing.T) {
	next, effects := Reduce(Session{}, Loaded{})
	if next.State != AwaitingIdentity {
		t.Fatalf("expected AwaitingIdentity, got %v", next.State)
	}
	if !hasEffect(effects, "ShowIdentityEntry") || !hasEffect(effects, "StartFetch") {
		t.Fatalf("unexpected effects: %v", effectTypes(effects))
	}
}

func TestSubmitWithTypedNamePersistsIdentity(t *testing.T) {
	next, effects := Reduce(Session{State: AwaitingIdentity}, Submit{TypedName: " Ada "})
	if next.State != Ready || next.Username != "Ada" {
		t.Fatalf("expected Ready/Ada, got %+v", next)
	}
	found := false
	for _, eff := range effects {
		if persist, ok := eff.(PersistIdentity); ok {
			found = true
			if persist.Name != "Ada" {
				t.Fatalf("expected persisted name Ada, got %q", persist.Name)
			}
		}
	}
	if !found {
		t.Fatalf("expected PersistIdentity effect, got %v", effectTypes(effects))
	}
	for _, want := range []string{"RecordScore", "RefreshScoreboard", "ClearDeck", "StartFetch"} {
		if !hasEffect(effects, want) {
			t.Fatalf("missing %s effect: %v", want, effectTypes(effects))
		}
	}
}

func TestSubmitIgnoresTypedNameWhenIdentityExists(t *testing.T) {
	next, effects := Reduce(Session{State: Ready, Username: "Ada"}, Submit{TypedName: "Mallory"})
	if next.Username != "Ada" {
		t.Fatalf("expected Ada to win, got %q", next.Username)
	}
	if hasEffect(effects, "PersistIdentity") {
		t.Fatalf("identity must not be re-persisted: %v", effectTypes(effects))
	}
	for _, eff := range effects {
		if record, ok := eff.(RecordScore); ok {
			if record.Name != "Ada" {
				t.Fatalf("score must be recorded under Ada, got %q", record.Name)
			}
			return
		}
	}
	t.Fatalf("expected RecordScore effect, got %v", effectTypes(effects))
}

func TestSubmitWithoutNameAlertsAndAborts(t *testing.T) {
	prior := Session{State: AwaitingIdentity}
	next, effects := Reduce(prior, Submit{TypedName: "   "})
	if next != prior {
		t.Fatalf("state must not change, got %+v", next)
	}
	if len(effects) != 1 {
		t.Fatalf("expected exactly one effect, got %v", effectTypes(effects))
	}
	if _, ok := effects[0].(Alert); !ok {
		t.Fatalf("expected Alert, got %v", effectTypes(effects))
	}
}

func TestNewPlayerClearsIdentityWithoutFetch(t *testing.T) {
	next, effects := Reduce(Session{State: Ready, Username: "Ada"}, NewPlayerPressed{})
	if next.State != AwaitingIdentity || next.Username != "" {
		t.Fatalf("expected cleared AwaitingIdentity, got %+v", next)
	}
	for _, want := range []string{"DeleteIdentity", "ClearDeck", "ShowIdentityEntry", "RefreshScoreboard"} {
		if !hasEffect(effects, want) {
			t.Fatalf("missing %s effect: %v", want, effectTypes(effects))
		}
	}
	if hasEffect(effects, "StartFetch") {
		t.Fatalf("new player must not trigger a fetch: %v", effectTypes(effects))
	}
}

func buildCards(n int) []model.Card {
	cards := make([]model.Card, 0, n)
	for i := 0; i < n; i++ {
		cards = append(cards, model.Card{
			Prompt: "q",
			Options: []model.Option{
				{Label: "right", Correct: true},
				{Label: "wrong"},
				{Label: "wrong"},
				{Label: "wrong"},
			},
		})
	}
	return cards
}

func TestScoreCountsCorrectPicks(t *testing.T) {
	cards := buildCards(10)
	picks := map[int]int{}
	for i := 0; i < 6; i++ {
		picks[i] = 0 // correct
	}
	picks[6] = 1 // incorrect
	picks[7] = 2 // incorrect
	// Cards 8 and 9 unanswered.
	if got := Score(cards, picks); got != 6 {
		t.Fatalf("expected score 6, got %d", got)
	}
}

func TestScoreBounds(t *testing.T) {
	cards := buildCards(3)
	if got := Score(cards, nil); got != 0 {
		t.Fatalf("unanswered round must score 0, got %d", got)
	}
	all := map[int]int{0: 0, 1: 0, 2: 0}
	if got := Score(cards, all); got != len(cards) {
		t.Fatalf("expected full score %d, got %d", len(cards), got)
	}
	outOfRange := map[int]int{0: 9, 1: -1}
	if got := Score(cards, outOfRange); got != 0 {
		t.Fatalf("out-of-range picks must score 0, got %d", got)
	}
}
