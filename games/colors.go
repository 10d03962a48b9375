/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

// ColorQuiz is the color-matching quiz. Every player answers each round; a
// point is credited per correct answer once the whole room has answered.
type ColorQuiz struct{}

func NewColorQuiz() *ColorQuiz {
	return &ColorQuiz{}
}

func (c *ColorQuiz) Kind() Kind {
	return KindColors
}

func (c *ColorQuiz) seat(p *Player) {
	p.Score = 0
}

type colorsView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	IsVIP bool   `json:"isVIP"`
	Score int    `json:"score"`
}

func (c *ColorQuiz) view(p *Player) any {
	return colorsView{ID: p.ID, Name: p.Name, IsVIP: p.VIP, Score: p.Score}
}

// start opens a new round, replacing one that is still open.
func (c *ColorQuiz) start(r *Room) bool {
	if len(r.players) == 0 {
		return false
	}

	r.resetLocked()
	r.round++

	ph := &Matching{
		Round:   newColorRound(r.rng),
		answers: NewCollector[bool](r.idsLocked()),
	}
	r.phase = ph

	r.broadcastLocked(EventNewRound, NewRound{Round: r.round, ColorRound: ph.Round})

	return true
}

func (c *ColorQuiz) next(r *Room) bool {
	return c.start(r)
}

func (c *ColorQuiz) settle(r *Room) {
	ph, ok := r.phase.(*Matching)
	if !ok || !ph.answers.Complete() {
		return
	}

	correct := []string{}
	for _, s := range ph.answers.Drain() {
		p := r.playerLocked(s.PlayerID)
		if p == nil || !s.Value {
			continue
		}
		p.Score++
		correct = append(correct, p.Name)
	}
	r.phase = Idle{}

	r.broadcastLocked(EventRoundResults, RoundResults{
		Round:   r.round,
		Correct: correct,
		Players: r.rosterLocked(),
	})
}

// Select answers the open colors round and reports whether the selection was
// correct. ok is false if the answer was not accepted.
func (r *Room) Select(id string, selection ColorOption) (correct, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ph, open := r.phase.(*Matching)
	if r.closed || !open {
		return false, false
	}

	correct = selection.field(ph.Round.Prompt) == ph.Round.TargetColor
	if !ph.answers.Submit(id, correct) {
		return false, false
	}
	r.lastActive = r.now()

	r.game.settle(r)

	return correct, true
}
