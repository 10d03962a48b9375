/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type sent struct {
	code    string
	event   string
	payload any
}

// recorder is a Broadcaster that keeps everything it is given.
type recorder struct {
	mu   sync.Mutex
	sent []sent
}

func (rec *recorder) Broadcast(code, event string, payload any) {
	rec.mu.Lock()
	defer rec.mu.Unlock()

	rec.sent = append(rec.sent, sent{code: code, event: event, payload: payload})
}

func (rec *recorder) events(event string) []any {
	rec.mu.Lock()
	defer rec.mu.Unlock()

	var out []any
	for _, s := range rec.sent {
		if s.event == event {
			out = append(out, s.payload)
		}
	}
	return out
}

func (rec *recorder) last(t *testing.T, event string) any {
	t.Helper()

	got := rec.events(event)
	require.NotEmpty(t, got, "no %q broadcast", event)
	return got[len(got)-1]
}

func (rec *recorder) reset() {
	rec.mu.Lock()
	defer rec.mu.Unlock()

	rec.sent = nil
}

// manual is a Scheduler whose timers only fire when the test says so.
type manual struct {
	mu    sync.Mutex
	tasks []*task
}

type task struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (m *manual) schedule(d time.Duration, f func()) func() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := &task{d: d, f: f}
	m.tasks = append(m.tasks, t)

	return func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()

		was := !t.stopped
		t.stopped = true
		return was
	}
}

// fire runs every pending timer that has not been stopped and returns how many
// ran. Timers scheduled while firing wait for the next call.
func (m *manual) fire() int {
	m.mu.Lock()
	tasks := m.tasks
	m.tasks = nil
	m.mu.Unlock()

	n := 0
	for _, t := range tasks {
		m.mu.Lock()
		stopped := t.stopped
		t.stopped = true
		m.mu.Unlock()

		if stopped {
			continue
		}
		t.f()
		n++
	}
	return n
}

func (m *manual) pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, t := range m.tasks {
		if !t.stopped {
			n++
		}
	}
	return n
}

type fixture struct {
	reg   *Registry
	rec   *recorder
	timer *manual
	room  *Room
}

// newFixture creates a registry for game with one room and the named players
// joined in order; the first is the host.
func newFixture(t *testing.T, game Game, ids ...string) *fixture {
	t.Helper()

	f := &fixture{rec: &recorder{}, timer: &manual{}}
	f.reg = NewRegistry(game, f.rec, WithScheduler(f.timer.schedule), WithSeed(1))

	code, err := f.reg.Create()
	require.NoError(t, err)

	room, ok := f.reg.Get(code)
	require.True(t, ok)
	f.room = room

	for _, id := range ids {
		res := room.Join(id, "name-"+id)
		require.True(t, res.Accepted)
	}
	f.rec.reset()

	return f
}

func (f *fixture) player(t *testing.T, id string) *Player {
	t.Helper()

	f.room.mu.Lock()
	defer f.room.mu.Unlock()

	p := f.room.playerLocked(id)
	require.NotNil(t, p, "player %s not in room", id)
	return p
}

func ids(players []Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.ID
	}
	return out
}
