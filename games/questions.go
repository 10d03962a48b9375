/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import "time"

// Questions is the ping-pong party game: the asker reads a question and names
// another player, who becomes the next asker.
type Questions struct {
	list  []string
	delay time.Duration
}

// NewQuestions returns a questions game over list. delay is the pause between
// an answer and the next question.
func NewQuestions(list []string, delay time.Duration) *Questions {
	return &Questions{list: list, delay: delay}
}

func (q *Questions) Kind() Kind {
	return KindQuestions
}

func (q *Questions) seat(_ *Player) {}

type questionsView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	IsVIP bool   `json:"isVIP"`
}

func (q *Questions) view(p *Player) any {
	return questionsView{ID: p.ID, Name: p.Name, IsVIP: p.VIP}
}

// start shuffles the question list and hands the first question to a random
// player. Starting again mid-game restarts from a fresh shuffle.
func (q *Questions) start(r *Room) bool {
	if len(r.players) == 0 || len(q.list) == 0 {
		return false
	}

	r.resetLocked()
	r.round = 0

	ph := &Answering{
		Questions: shuffle(r.rng, q.list),
		AskerID:   pick(r.rng, r.players).ID,
	}
	r.phase = ph

	q.ask(r, ph)

	return true
}

func (q *Questions) next(r *Room) bool {
	return q.start(r)
}

// settle hands the question to the first remaining player if the asker left.
func (q *Questions) settle(r *Room) {
	ph, ok := r.phase.(*Answering)
	if !ok || r.playerLocked(ph.AskerID) != nil || len(r.players) == 0 {
		return
	}

	ph.AskerID = r.players[0].ID
	if !ph.waiting {
		q.ask(r, ph)
	}
}

func (q *Questions) ask(r *Room, ph *Answering) {
	r.broadcastLocked(EventNewQuestion, NewQuestion{
		Question: ph.question(),
		AskedBy:  ph.AskerID,
	})
}

func (q *Questions) answer(r *Room, ph *Answering, askerID, targetID string) bool {
	if ph.waiting || askerID != ph.AskerID || r.playerLocked(targetID) == nil {
		return false
	}

	r.broadcastLocked(EventQuestionAnswered, QuestionAnswered{
		Question:   ph.question(),
		AskedBy:    askerID,
		AnsweredBy: targetID,
	})

	ph.Index++
	r.round = ph.Index

	if ph.Index >= len(ph.Questions) {
		r.resetLocked()
		r.log.Info().Int("questions", len(ph.Questions)).Msg("game over")
		r.broadcastLocked(EventGameOver, GameOver{})
		return true
	}

	ph.AskerID = targetID
	ph.waiting = true
	r.afterLocked(q.delay, func() {
		ph.waiting = false
		q.ask(r, ph)
	})

	return true
}

// Answer is the current asker naming targetID as the answer to the open
// question. Anyone other than the asker is ignored.
func (r *Room) Answer(askerID, targetID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.game.(*Questions)
	if !ok || r.closed {
		return false
	}
	ph, ok := r.phase.(*Answering)
	if !ok {
		return false
	}
	r.lastActive = r.now()

	return q.answer(r, ph, askerID, targetID)
}
