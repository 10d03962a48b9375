/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Scheduler runs f once after d and returns a function that cancels it.
type Scheduler func(d time.Duration, f func()) (stop func() bool)

func afterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// JoinResult is the acknowledgement for a join.
type JoinResult struct {
	Accepted bool
	IsHost   bool
}

// Room is one game session. Every exported method takes the room lock and runs
// to completion, so the state machine only ever sees one event at a time.
type Room struct {
	mu sync.Mutex

	code     string
	game     Game
	out      Broadcaster
	log      zerolog.Logger
	rng      *rand.Rand
	schedule Scheduler
	now      func() time.Time

	hostID  string
	players []*Player
	phase   Phase
	round   int

	// epoch invalidates timers scheduled before the last reset.
	epoch  uint64
	timers []func() bool

	finished   bool
	closed     bool
	lastActive time.Time
}

func newRoom(code string, game Game, out Broadcaster, log zerolog.Logger, rng *rand.Rand, schedule Scheduler, now func() time.Time) *Room {
	return &Room{
		code:       code,
		game:       game,
		out:        out,
		log:        log.With().Str("room", code).Str("game", string(game.Kind())).Logger(),
		rng:        rng,
		schedule:   schedule,
		now:        now,
		phase:      Idle{},
		lastActive: now(),
	}
}

func (r *Room) Code() string {
	return r.code
}

// Join seats a player. The first player to ever join becomes the VIP host;
// nobody else is promoted, even if the host later leaves.
func (r *Room) Join(id, name string) JoinResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return JoinResult{}
	}

	r.lastActive = r.now()

	if p := r.playerLocked(id); p != nil {
		r.broadcastPlayersLocked()
		return JoinResult{Accepted: true, IsHost: p.VIP}
	}

	p := &Player{ID: id, Name: name}
	if r.hostID == "" {
		r.hostID = id
		p.VIP = true
	}
	r.game.seat(p)
	r.players = append(r.players, p)

	r.log.Debug().Str("player", name).Bool("vip", p.VIP).Msg("player joined")

	r.broadcastPlayersLocked()

	return JoinResult{Accepted: true, IsHost: p.VIP}
}

// Leave removes a player and reports whether they were present. If the phase
// was only waiting on them it resolves here, before Leave returns.
func (r *Room) Leave(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.IndexFunc(r.players, func(p *Player) bool { return p.ID == id })
	if i < 0 {
		return false
	}

	name := r.players[i].Name
	r.players = slices.Delete(r.players, i, i+1)
	r.phase.forget(id)
	r.lastActive = r.now()

	r.log.Debug().Str("player", name).Msg("player left")

	r.broadcastPlayersLocked()

	if len(r.players) == 0 {
		r.resetLocked()
		return true
	}

	r.game.settle(r)

	return true
}

// Start is the host's startRound/startGame.
func (r *Room) Start(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.hostLocked(id) {
		return false
	}
	r.lastActive = r.now()

	return r.game.start(r)
}

// Next is the host's nextRound.
func (r *Room) Next(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.hostLocked(id) {
		return false
	}
	r.lastActive = r.now()

	return r.game.next(r)
}

// Players returns a copy of the roster in join order.
func (r *Room) Players() []Player {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Player, len(r.players))
	for i, p := range r.players {
		out[i] = p.clone()
	}
	return out
}

func (r *Room) HostID() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.hostID
}

func (r *Room) PhaseName() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.phase.Name()
}

func (r *Room) Round() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.round
}

// Finished reports whether the game has ended for good.
func (r *Room) Finished() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.finished
}

// Close cancels pending timers and rejects all further events.
func (r *Room) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.resetLocked()
	r.closed = true
}

// idle reports whether the room is empty and untouched for at least grace.
func (r *Room) idle(now time.Time, grace time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.players) == 0 && now.Sub(r.lastActive) >= grace
}

// hostLocked reports whether id is the seated VIP. A host who left and joined
// again comes back as an ordinary player.
func (r *Room) hostLocked(id string) bool {
	if r.closed || id == "" || id != r.hostID {
		return false
	}
	p := r.playerLocked(id)
	return p != nil && p.VIP
}

func (r *Room) playerLocked(id string) *Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Room) idsLocked() []string {
	ids := make([]string, len(r.players))
	for i, p := range r.players {
		ids[i] = p.ID
	}
	return ids
}

func (r *Room) rosterLocked() []any {
	views := make([]any, len(r.players))
	for i, p := range r.players {
		views[i] = r.game.view(p)
	}
	return views
}

// sweepLocked removes every player for which out returns true, in join order,
// and returns their names.
func (r *Room) sweepLocked(out func(*Player) bool) []string {
	gone := []string{}
	r.players = slices.DeleteFunc(r.players, func(p *Player) bool {
		if out(p) {
			gone = append(gone, p.Name)
			return true
		}
		return false
	})
	for _, name := range gone {
		r.log.Debug().Str("player", name).Msg("player eliminated")
	}
	return gone
}

func (r *Room) broadcastLocked(event string, payload any) {
	if r.out == nil {
		return
	}
	r.out.Broadcast(r.code, event, payload)
}

func (r *Room) broadcastPlayersLocked() {
	r.broadcastLocked(EventPlayers, PlayersUpdate{Players: r.rosterLocked()})
}

// afterLocked runs f under the room lock after d, unless the room is closed or
// reset in the meantime.
func (r *Room) afterLocked(d time.Duration, f func()) {
	epoch := r.epoch
	stop := r.schedule(d, func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		if r.closed || r.epoch != epoch {
			return
		}
		f()
	})
	r.timers = append(r.timers, stop)
}

// resetLocked cancels pending timers and returns the room to Idle.
func (r *Room) resetLocked() {
	for _, stop := range r.timers {
		stop()
	}
	r.timers = nil
	r.epoch++
	r.phase = Idle{}
}
