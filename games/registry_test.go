/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCreateRetriesCollisions(t *testing.T) {
	codes := []string{"AAAA", "AAAA", "AAAA", "BBBB"}
	next := func() string {
		c := codes[0]
		codes = codes[1:]
		return c
	}
	reg := NewRegistry(NewColorQuiz(), &recorder{}, WithCodes(next))

	first, err := reg.Create()
	require.NoError(t, err)
	assert.Equal(t, "AAAA", first)

	second, err := reg.Create()
	require.NoError(t, err)
	assert.Equal(t, "BBBB", second)
	assert.Equal(t, 2, reg.Len())
}

func TestRegistryCreateGivesUp(t *testing.T) {
	reg := NewRegistry(NewColorQuiz(), &recorder{}, WithCodes(func() string { return "SAME" }))

	_, err := reg.Create()
	require.NoError(t, err)

	_, err = reg.Create()
	assert.ErrorIs(t, err, ErrCodesExhausted)
}

func TestRegistryGetMissing(t *testing.T) {
	reg := NewRegistry(NewColorQuiz(), &recorder{})

	room, ok := reg.Get("NOPE")
	assert.False(t, ok)
	assert.Nil(t, room)
	assert.ErrorIs(t, reg.Delete("NOPE"), ErrRoomNotFound)
}

func TestRegistryLeaveSweepsAllRooms(t *testing.T) {
	rec := &recorder{}
	reg := NewRegistry(NewColorQuiz(), rec)

	var rooms []*Room
	for range 3 {
		code, err := reg.Create()
		require.NoError(t, err)
		room, _ := reg.Get(code)
		rooms = append(rooms, room)
	}

	rooms[0].Join("p", "P")
	rooms[0].Join("q", "Q")
	rooms[2].Join("p", "P")

	assert.Equal(t, 2, reg.Leave("p"))
	assert.Equal(t, 0, reg.Leave("p"))
	assert.Equal(t, []string{"q"}, ids(rooms[0].Players()))
	assert.Empty(t, rooms[2].Players())
}

func TestRegistryReapOnlyEmptyIdleRooms(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	reg := NewRegistry(NewColorQuiz(), &recorder{}, WithClock(clock), WithGrace(time.Minute))

	empty, err := reg.Create()
	require.NoError(t, err)
	busy, err := reg.Create()
	require.NoError(t, err)
	room, _ := reg.Get(busy)
	room.Join("a", "A")

	assert.Empty(t, reg.Reap(now.Add(30*time.Second)))

	reaped := reg.Reap(now.Add(2 * time.Minute))
	assert.Equal(t, []string{empty}, reaped)

	_, ok := reg.Get(empty)
	assert.False(t, ok)
	_, ok = reg.Get(busy)
	assert.True(t, ok)
}

func TestRegistryRunStopsOnCancel(t *testing.T) {
	reg := NewRegistry(NewColorQuiz(), &recorder{}, WithGrace(time.Hour))
	code, err := reg.Create()
	require.NoError(t, err)
	room, _ := reg.Get(code)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		reg.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	assert.Zero(t, reg.Len())
	assert.False(t, room.Join("a", "A").Accepted)
}

func TestRegistryReportsRemovedRooms(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	var removed []string
	reg := NewRegistry(NewColorQuiz(), &recorder{},
		WithClock(func() time.Time { return now }),
		WithGrace(time.Minute),
		WithOnRemove(func(code string) { removed = append(removed, code) }),
	)

	deleted, err := reg.Create()
	require.NoError(t, err)
	require.NoError(t, reg.Delete(deleted))
	assert.Equal(t, []string{deleted}, removed)

	assert.ErrorIs(t, reg.Delete(deleted), ErrRoomNotFound)
	assert.Len(t, removed, 1)

	idle, err := reg.Create()
	require.NoError(t, err)
	reg.Reap(now.Add(2 * time.Minute))
	assert.Equal(t, []string{deleted, idle}, removed)
}
