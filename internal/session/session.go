// Package session holds the quiz lifecycle as a pure state machine. The TUI
// interprets the effects; nothing in this package touches a terminal or a
// store.
package session

import (
	"strings"

	"github.com/okoshkin/trivtui/internal/model"
)

// State identifies the visible UI configuration.
type State int

const (
	// AwaitingIdentity shows the name entry form; the deck is hidden.
	AwaitingIdentity State = iota
	// Ready shows the question deck under a resolved identity.
	Ready
)

// Session is the reducer state: the active screen and the resolved identity.
type Session struct {
	State    State
	Username string
}

// Event is an input to Reduce.
type Event interface{ event() }

// Loaded fires once at startup after the identity check.
type Loaded struct {
	Username    string
	HasIdentity bool
}

// Submit fires on the submit action from either screen.
type Submit struct {
	TypedName string
}

// NewPlayerPressed fires on the new-player action.
type NewPlayerPressed struct{}

// QuestionsArrived fires when a fetch completes.
type QuestionsArrived struct{}

// FetchFailed fires when a fetch errors out.
type FetchFailed struct{}

func (Loaded) event()           {}
func (Submit) event()           {}
func (NewPlayerPressed) event() {}
func (QuestionsArrived) event() {}
func (FetchFailed) event()      {}

// Effect is an instruction for the interpretation layer.
type Effect interface{ effect() }

// ShowIdentityEntry reveals and clears the name entry form.
type ShowIdentityEntry struct{}

// ShowDeck reveals the question deck.
type ShowDeck struct{}

// StartFetch requests a new question batch.
type StartFetch struct{}

// PersistIdentity stores a new identity. Emitted only when none existed.
type PersistIdentity struct{ Name string }

// RecordScore scores the current picks and appends a score entry under Name.
type RecordScore struct{ Name string }

// ClearDeck discards the current cards and picks.
type ClearDeck struct{}

// DeleteIdentity removes the stored identity.
type DeleteIdentity struct{}

// Alert surfaces a blocking user-facing message.
type Alert struct{ Message string }

// RefreshScoreboard reloads the score log into the scoreboard view.
type RefreshScoreboard struct{}

func (ShowIdentityEntry) effect() {}
func (ShowDeck) effect()          {}
func (StartFetch) effect()        {}
func (PersistIdentity) effect()   {}
func (RecordScore) effect()       {}
func (ClearDeck) effect()         {}
func (DeleteIdentity) effect()    {}
func (Alert) effect()             {}
func (RefreshScoreboard) effect() {}

// Reduce applies one event and returns the next state with the effects the
// interpretation layer must run, in order.
func Reduce(s Session, ev Event) (Session, []Effect) {
	switch ev := ev.(type) {
	case Loaded:
		if ev.HasIdentity {
			return Session{State: Ready, Username: ev.Username},
				[]Effect{ShowDeck{}, StartFetch{}}
		}
		return Session{State: AwaitingIdentity},
			[]Effect{ShowIdentityEntry{}, StartFetch{}}
	case Submit:
		// An existing identity wins; the typed value is ignored entirely.
		name := s.Username
		if name == "" {
			name = strings.TrimSpace(ev.TypedName)
		}
		if name == "" {
			return s, []Effect{Alert{Message: "Enter a name before submitting."}}
		}
		effects := []Effect{}
		if s.Username == "" {
			effects = append(effects, PersistIdentity{Name: name})
		}
		effects = append(effects,
			RecordScore{Name: name},
			RefreshScoreboard{},
			ClearDeck{},
			ShowDeck{},
			StartFetch{},
		)
		return Session{State: Ready, Username: name}, effects
	case NewPlayerPressed:
		// No fetch here: the next batch arrives on the next submit or restart.
		return Session{State: AwaitingIdentity},
			[]Effect{DeleteIdentity{}, ClearDeck{}, ShowIdentityEntry{}, RefreshScoreboard{}}
	case QuestionsArrived, FetchFailed:
		return s, nil
	default:
		return s, nil
	}
}

// Score counts picked options tagged correct. Unanswered cards contribute
// zero; picks holds at most one option index per card.
func Score(cards []model.Card, picks map[int]int) int {
	score := 0
	for i, card := range cards {
		pick, ok := picks[i]
		if !ok || pick < 0 || pick >= len(card.Options) {
			continue
		}
		if card.Options[pick].Correct {
			score++
		}
	}
	return score
}
