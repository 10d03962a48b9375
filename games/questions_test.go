/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var threeQuestions = []string{"Q1?", "Q2?", "Q3?"}

func other(asker string, ids ...string) string {
	for _, id := range ids {
		if id != asker {
			return id
		}
	}
	return ""
}

func TestQuestionsStart(t *testing.T) {
	f := newFixture(t, NewQuestions(threeQuestions, 4*time.Second), "a", "b", "c")

	assert.False(t, f.room.Start("b"))
	require.True(t, f.room.Start("a"))
	assert.Equal(t, "answering", f.room.PhaseName())

	q := f.rec.last(t, EventNewQuestion).(NewQuestion)
	assert.Contains(t, threeQuestions, q.Question)
	assert.Contains(t, []string{"a", "b", "c"}, q.AskedBy)

	f.room.mu.Lock()
	ph := f.room.phase.(*Answering)
	assert.ElementsMatch(t, threeQuestions, ph.Questions)
	f.room.mu.Unlock()
}

func TestQuestionsPingPong(t *testing.T) {
	f := newFixture(t, NewQuestions(threeQuestions, 4*time.Second), "a", "b", "c")
	require.True(t, f.room.Start("a"))

	first := f.rec.last(t, EventNewQuestion).(NewQuestion)
	asker := first.AskedBy
	target := other(asker, "a", "b", "c")

	assert.False(t, f.room.Answer(target, asker), "only the asker answers")
	assert.False(t, f.room.Answer(asker, "ghost"), "target must be seated")

	require.True(t, f.room.Answer(asker, target))
	answered := f.rec.last(t, EventQuestionAnswered).(QuestionAnswered)
	assert.Equal(t, QuestionAnswered{Question: first.Question, AskedBy: asker, AnsweredBy: target}, answered)

	assert.Len(t, f.rec.events(EventNewQuestion), 1, "next question waits for the delay")
	assert.False(t, f.room.Answer(target, asker), "no answers while waiting")

	require.Equal(t, 1, f.timer.fire())
	second := f.rec.last(t, EventNewQuestion).(NewQuestion)
	assert.Equal(t, target, second.AskedBy)
	assert.NotEqual(t, first.Question, second.Question)
	assert.Equal(t, 1, f.room.Round())
}

func TestQuestionsGameOver(t *testing.T) {
	f := newFixture(t, NewQuestions(threeQuestions, time.Second), "a", "b")
	require.True(t, f.room.Start("a"))

	for range threeQuestions {
		asker := f.rec.last(t, EventNewQuestion).(NewQuestion).AskedBy
		require.True(t, f.room.Answer(asker, other(asker, "a", "b")))
		f.timer.fire()
	}

	assert.Len(t, f.rec.events(EventQuestionAnswered), 3)
	assert.Len(t, f.rec.events(EventNewQuestion), 3)
	assert.Len(t, f.rec.events(EventGameOver), 1)
	assert.Equal(t, "idle", f.room.PhaseName())

	require.True(t, f.room.Start("a"), "the host may play again")
}

func TestQuestionsAskerLeaves(t *testing.T) {
	f := newFixture(t, NewQuestions(threeQuestions, time.Second), "a", "b", "c")
	require.True(t, f.room.Start("a"))

	asker := f.rec.last(t, EventNewQuestion).(NewQuestion).AskedBy
	require.True(t, f.room.Leave(asker))

	again := f.rec.last(t, EventNewQuestion).(NewQuestion)
	assert.Len(t, f.rec.events(EventNewQuestion), 2)
	assert.Equal(t, f.room.Players()[0].ID, again.AskedBy)
	assert.NotEqual(t, asker, again.AskedBy)
}

func TestQuestionsNextAskerLeavesDuringDelay(t *testing.T) {
	f := newFixture(t, NewQuestions(threeQuestions, time.Second), "a", "b", "c")
	require.True(t, f.room.Start("a"))

	asker := f.rec.last(t, EventNewQuestion).(NewQuestion).AskedBy
	target := other(asker, "a", "b", "c")
	require.True(t, f.room.Answer(asker, target))

	require.True(t, f.room.Leave(target))
	assert.Len(t, f.rec.events(EventNewQuestion), 1)

	require.Equal(t, 1, f.timer.fire())
	next := f.rec.last(t, EventNewQuestion).(NewQuestion)
	assert.Equal(t, f.room.Players()[0].ID, next.AskedBy)
}

func TestQuestionsRestartCancelsDelay(t *testing.T) {
	f := newFixture(t, NewQuestions(threeQuestions, time.Second), "a", "b")
	require.True(t, f.room.Start("a"))

	asker := f.rec.last(t, EventNewQuestion).(NewQuestion).AskedBy
	require.True(t, f.room.Answer(asker, other(asker, "a", "b")))
	require.True(t, f.room.Next("a"))

	assert.Zero(t, f.timer.fire())
	assert.Len(t, f.rec.events(EventNewQuestion), 2)
	assert.Zero(t, f.room.Round())
}
