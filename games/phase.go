/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

// Phase is the tagged state of a room. Only the fields of the active variant
// exist, so a room never carries data that is meaningless for its phase.
type Phase interface {
	Name() string
	forget(playerID string)
}

// Idle is the resting state between rounds.
type Idle struct{}

func (Idle) Name() string    { return "idle" }
func (Idle) forget(_ string) {}

// Bidding is open on a single item. Queue holds the items still to be
// auctioned this round.
type Bidding struct {
	Item  Item
	Queue []Item

	bids *Collector[int]
}

func (*Bidding) Name() string { return "bidding" }

func (b *Bidding) forget(id string) { b.bids.Forget(id) }

// Action is a targeting submission. Either field empty means the player passes.
type Action struct {
	TargetID string `json:"targetId,omitempty"`
	ItemID   string `json:"itemId,omitempty"`
}

// Targeting collects one action per player after the item queue is spent.
type Targeting struct {
	actions *Collector[Action]
}

func (*Targeting) Name() string { return "targeting" }

func (t *Targeting) forget(id string) { t.actions.Forget(id) }

// Answering is a single-submitter phase: only AskerID may act.
type Answering struct {
	Questions []string
	Index     int
	AskerID   string

	// waiting is set between an answer and the next question broadcast.
	waiting bool
}

func (*Answering) Name() string { return "answering" }

func (*Answering) forget(_ string) {}

func (a *Answering) question() string {
	if a.Index < 0 || a.Index >= len(a.Questions) {
		return ""
	}
	return a.Questions[a.Index]
}

// Matching is an open colors round.
type Matching struct {
	Round ColorRound

	answers *Collector[bool]
}

func (*Matching) Name() string { return "matching" }

func (m *Matching) forget(id string) { m.answers.Forget(id) }
