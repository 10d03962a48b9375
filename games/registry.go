/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrCodesExhausted = errors.New("unable to generate an unused room code")
)

const maxCodeAttempts = 1024

// Registry owns every room of one game.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room

	game     Game
	out      Broadcaster
	codes    func() string
	grace    time.Duration
	schedule Scheduler
	log      zerolog.Logger
	now      func() time.Time
	removed  func(code string)

	// rng seeds each room's own generator; guarded by mu.
	rng *rand.Rand
}

type Option func(*Registry)

func WithLogger(log zerolog.Logger) Option {
	return func(r *Registry) { r.log = log }
}

func WithCodes(codes func() string) Option {
	return func(r *Registry) { r.codes = codes }
}

// WithGrace sets how long an empty room survives before Reap removes it.
func WithGrace(d time.Duration) Option {
	return func(r *Registry) { r.grace = d }
}

func WithScheduler(s Scheduler) Option {
	return func(r *Registry) { r.schedule = s }
}

func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// WithOnRemove registers f to be called with the code of every room the
// registry deletes, reaps or closes. No registry lock is held during the call.
func WithOnRemove(f func(code string)) Option {
	return func(r *Registry) { r.removed = f }
}

func WithSeed(seed uint64) Option {
	return func(r *Registry) { r.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

func NewRegistry(game Game, out Broadcaster, opts ...Option) *Registry {
	r := &Registry{
		rooms:    make(map[string]*Room),
		game:     game,
		out:      out,
		codes:    NewCodes(DefaultCodeLength),
		grace:    time.Hour,
		schedule: afterFunc,
		log:      zerolog.Nop(),
		now:      time.Now,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) Kind() Kind {
	return r.game.Kind()
}

// Create stores a new empty room under an unused code.
func (r *Registry) Create() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for range maxCodeAttempts {
		code := r.codes()
		if _, exists := r.rooms[code]; exists {
			continue
		}

		rng := rand.New(rand.NewPCG(r.rng.Uint64(), r.rng.Uint64()))
		r.rooms[code] = newRoom(code, r.game, r.out, r.log, rng, r.schedule, r.now)

		r.log.Info().Str("room", code).Str("game", string(r.game.Kind())).Msg("room created")

		return code, nil
	}

	return "", ErrCodesExhausted
}

// Get looks a room up. A missing room is an ordinary outcome.
func (r *Registry) Get(code string) (*Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[code]
	return room, ok
}

// Delete closes and forgets a room.
func (r *Registry) Delete(code string) error {
	r.mu.Lock()
	room, ok := r.rooms[code]
	delete(r.rooms, code)
	r.mu.Unlock()

	if !ok {
		return ErrRoomNotFound
	}
	room.Close()
	r.forget(code)

	return nil
}

// Leave removes playerID from every room it is in and returns how many rooms
// that was.
func (r *Registry) Leave(playerID string) int {
	r.mu.RLock()
	rooms := make([]*Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		rooms = append(rooms, room)
	}
	r.mu.RUnlock()

	n := 0
	for _, room := range rooms {
		if room.Leave(playerID) {
			n++
		}
	}
	return n
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rooms)
}

// Reap deletes rooms that have been empty for longer than the grace period,
// and returns their codes.
func (r *Registry) Reap(now time.Time) []string {
	r.mu.Lock()
	var reaped []*Room
	for code, room := range r.rooms {
		if room.idle(now, r.grace) {
			delete(r.rooms, code)
			reaped = append(reaped, room)
		}
	}
	r.mu.Unlock()

	codes := make([]string, 0, len(reaped))
	for _, room := range reaped {
		room.Close()
		r.forget(room.code)
		codes = append(codes, room.code)
		r.log.Info().Str("room", room.code).Msg("room reaped")
	}
	return codes
}

// Run reaps idle rooms every half grace period until ctx is done.
func (r *Registry) Run(ctx context.Context) {
	if r.grace <= 0 {
		return
	}

	ticker := time.NewTicker(r.grace / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.closeAll()
			return
		case <-ticker.C:
			r.Reap(r.now())
		}
	}
}

func (r *Registry) closeAll() {
	r.mu.Lock()
	rooms := r.rooms
	r.rooms = make(map[string]*Room)
	r.mu.Unlock()

	for code, room := range rooms {
		room.Close()
		r.forget(code)
	}
}

func (r *Registry) forget(code string) {
	if r.removed != nil {
		r.removed(code)
	}
}
