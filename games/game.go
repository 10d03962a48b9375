/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package games implements short-lived party game rooms: a roster, a phase
// state machine, and the rules that resolve each phase once every player has
// made their move.
package games

type Kind string

const (
	KindColors    Kind = "colors"
	KindQuestions Kind = "questions"
	KindBidding   Kind = "bidding"
	KindDrinking  Kind = "drinking"
)

// Game is the rule set a room runs. Every method is called with the room lock
// held.
type Game interface {
	Kind() Kind

	// seat gives a newly joined player their starting stats.
	seat(p *Player)

	// view is the public record of p sent in roster broadcasts.
	view(p *Player) any

	start(r *Room) bool
	next(r *Room) bool

	// settle resolves the current phase if it became complete, either through
	// a submission or because the roster shrank.
	settle(r *Room)
}
