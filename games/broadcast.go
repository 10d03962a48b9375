/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

// Broadcaster publishes an event to every connection subscribed to a room.
type Broadcaster interface {
	Broadcast(code, event string, payload any)
}

// BroadcasterFunc adapts a plain function to the Broadcaster interface.
type BroadcasterFunc func(code, event string, payload any)

func (f BroadcasterFunc) Broadcast(code, event string, payload any) {
	f(code, event, payload)
}

// Outbound event names.
const (
	EventPlayers          = "playersUpdate"
	EventNewRound         = "newRound"
	EventRoundResults     = "roundResults"
	EventNewQuestion      = "newQuestion"
	EventQuestionAnswered = "questionAnswered"
	EventNewItem          = "newItem"
	EventBiddingResult    = "biddingResult"
	EventBiddingComplete  = "biddingComplete"
	EventAttackResults    = "attackResults"
	EventGameOver         = "gameOver"
)

type PlayersUpdate struct {
	Players []any `json:"players"`
}

type NewRound struct {
	Round int `json:"round"`
	ColorRound
}

type RoundResults struct {
	Round   int      `json:"round"`
	Correct []string `json:"correct"`
	Players []any    `json:"players"`
}

type NewQuestion struct {
	Question string `json:"question"`
	AskedBy  string `json:"askedBy"`
}

type QuestionAnswered struct {
	Question   string `json:"question"`
	AskedBy    string `json:"askedBy"`
	AnsweredBy string `json:"answeredBy"`
}

type NewItem struct {
	Round     int  `json:"round"`
	Item      Item `json:"item"`
	Remaining int  `json:"remaining"`
}

// BiddingResult reports the outcome of one item. Winner is nil when no
// eligible bid was placed and the item was discarded.
type BiddingResult struct {
	Item       Item    `json:"item"`
	Winner     *string `json:"winnerName"`
	WinningBid int     `json:"winningBid"`
	Players    []any   `json:"players"`
}

type BiddingComplete struct {
	Round   int   `json:"round"`
	Players []any `json:"players"`
}

type AttackResult struct {
	Attacker  string `json:"attackerName"`
	Target    string `json:"targetName,omitempty"`
	Magnitude int    `json:"magnitude"`
	Item      string `json:"itemName,omitempty"`
	Skipped   bool   `json:"skipped"`
}

type AttackResults struct {
	Round      int            `json:"round"`
	Results    []AttackResult `json:"results"`
	Eliminated []string       `json:"eliminated"`
	Players    []any          `json:"players"`
}

// GameOver is terminal for the room. Winner is nil when nobody survived or the
// game has no winner (questions).
type GameOver struct {
	Winner     *string        `json:"winner"`
	Results    []AttackResult `json:"results,omitempty"`
	Eliminated []string       `json:"eliminated,omitempty"`
	Players    []any          `json:"players,omitempty"`
}
