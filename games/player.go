/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import "slices"

// Item is a catalog entry. Once won it is a player-owned copy with its own ID.
type Item struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Magnitude int    `json:"magnitude"`
}

// Player holds the server-side state of one connection in a room. Which stats
// are meaningful depends on the game: Score for colors, Vitality and Purse
// (health/gold or vision/currency) and Items for the auction games.
type Player struct {
	ID       string
	Name     string
	VIP      bool
	Score    int
	Vitality int
	Purse    int
	Items    []Item
}

func (p *Player) clone() Player {
	c := *p
	c.Items = slices.Clone(p.Items)
	return c
}

func (p *Player) itemIndex(id string) int {
	return slices.IndexFunc(p.Items, func(it Item) bool {
		return it.ID == id
	})
}
