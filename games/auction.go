/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"slices"
	"time"
)

// AuctionRules parameterizes the bidding/elimination games. Vitality is the
// stat that eliminates a player at zero, Purse is what they bid with; the
// names are the keys used in roster broadcasts.
type AuctionRules struct {
	Kind          Kind
	VitalityName  string
	PurseName     string
	StartVitality int
	StartPurse    int
	Bonus         int
	ItemsPerRound int
	Catalog       []Item

	// Consumables are the categories applied to the winner on purchase
	// instead of going into their inventory.
	Consumables []string
}

// BiddingRules is game A: health, gold and weapons.
func BiddingRules() AuctionRules {
	return AuctionRules{
		Kind:          KindBidding,
		VitalityName:  "health",
		PurseName:     "gold",
		StartVitality: 10,
		StartPurse:    20,
		Bonus:         5,
		ItemsPerRound: 3,
		Catalog:       WeaponCatalog,
		Consumables:   []string{CategoryHeal},
	}
}

// DrinkingRules is game B: vision, currency and drinks.
func DrinkingRules() AuctionRules {
	return AuctionRules{
		Kind:          KindDrinking,
		VitalityName:  "vision",
		PurseName:     "currency",
		StartVitality: 10,
		StartPurse:    20,
		Bonus:         5,
		ItemsPerRound: 3,
		Catalog:       DrinkCatalog,
		Consumables:   []string{CategoryWater},
	}
}

// Auction runs rounds of sealed bids on a queue of items, followed by one
// targeting batch in which players use what they bought on each other.
type Auction struct {
	rules AuctionRules
	delay time.Duration
}

// NewAuction returns an auction game. itemDelay is the pause between the
// result of one item and the opening of the next.
func NewAuction(rules AuctionRules, itemDelay time.Duration) *Auction {
	return &Auction{rules: rules, delay: itemDelay}
}

func (a *Auction) Kind() Kind {
	return a.rules.Kind
}

func (a *Auction) seat(p *Player) {
	p.Vitality = a.rules.StartVitality
	p.Purse = a.rules.StartPurse
	p.Items = nil
}

func (a *Auction) view(p *Player) any {
	items := slices.Clone(p.Items)
	if items == nil {
		items = []Item{}
	}

	return map[string]any{
		"id":                 p.ID,
		"name":               p.Name,
		"isVIP":              p.VIP,
		a.rules.VitalityName: p.Vitality,
		a.rules.PurseName:    p.Purse,
		"items":              items,
	}
}

func (a *Auction) consumable(item Item) bool {
	return slices.Contains(a.rules.Consumables, item.Category)
}

func (a *Auction) start(r *Room) bool {
	if r.finished {
		return false
	}
	if _, idle := r.phase.(Idle); !idle {
		return false
	}
	return a.beginRound(r)
}

// next abandons whatever phase is open and starts a fresh item queue.
func (a *Auction) next(r *Room) bool {
	if r.finished || len(r.players) < 2 {
		return false
	}
	r.resetLocked()
	return a.beginRound(r)
}

func (a *Auction) beginRound(r *Room) bool {
	if len(r.players) < 2 {
		return false
	}

	queue := draw(r.rng, a.rules.Catalog, a.rules.ItemsPerRound)
	if len(queue) == 0 {
		return false
	}

	r.round++
	a.openBidding(r, queue)

	return true
}

func (a *Auction) openBidding(r *Room, queue []Item) {
	ph := &Bidding{
		Item:  queue[0],
		Queue: queue[1:],
		bids:  NewCollector[int](r.idsLocked()),
	}
	r.phase = ph

	r.broadcastLocked(EventNewItem, NewItem{
		Round:     r.round,
		Item:      ph.Item,
		Remaining: len(ph.Queue),
	})
}

func (a *Auction) settle(r *Room) {
	switch ph := r.phase.(type) {
	case *Bidding:
		if ph.bids.Complete() {
			a.closeBidding(r, ph)
		}
	case *Targeting:
		if ph.actions.Complete() {
			a.closeTargeting(r, ph)
		}
	}
}

// resolveBids picks the strictly highest affordable bid. Ties go to whoever
// submitted first, since bids are iterated in first-submission order.
func resolveBids(bids []Submission[int], purse func(id string) (int, bool)) (string, int, bool) {
	best, winner := -1, ""
	for _, b := range bids {
		have, ok := purse(b.PlayerID)
		if !ok || b.Value < 0 || b.Value > have {
			continue
		}
		if b.Value > best {
			best, winner = b.Value, b.PlayerID
		}
	}
	if best < 0 {
		return "", 0, false
	}
	return winner, best, true
}

func (a *Auction) closeBidding(r *Room, ph *Bidding) {
	bids := ph.bids.Drain()

	winnerID, amount, ok := resolveBids(bids, func(id string) (int, bool) {
		p := r.playerLocked(id)
		if p == nil {
			return 0, false
		}
		return p.Purse, true
	})

	result := BiddingResult{Item: ph.Item}
	if ok {
		w := r.playerLocked(winnerID)
		w.Purse -= amount
		if a.consumable(ph.Item) {
			w.Vitality += ph.Item.Magnitude
		} else {
			w.Items = append(w.Items, ph.Item)
		}

		name := w.Name
		result.Winner = &name
		result.WinningBid = amount

		r.log.Debug().Str("item", ph.Item.Name).Str("winner", name).Int("bid", amount).Msg("item sold")
	}
	result.Players = r.rosterLocked()

	r.broadcastLocked(EventBiddingResult, result)

	if len(ph.Queue) > 0 {
		queue := ph.Queue
		r.afterLocked(a.delay, func() {
			a.openBidding(r, queue)
		})
		return
	}

	r.phase = &Targeting{actions: NewCollector[Action](r.idsLocked())}
	r.broadcastLocked(EventBiddingComplete, BiddingComplete{
		Round:   r.round,
		Players: r.rosterLocked(),
	})
}

// strike applies actions in first-submission order. An action whose target is
// already out, or whose item is no longer held, is dropped without a result.
// Attackers knocked out earlier in the same batch still get to act.
func (a *Auction) strike(r *Room, actions []Submission[Action]) []AttackResult {
	results := make([]AttackResult, 0, len(actions))

	for _, s := range actions {
		attacker := r.playerLocked(s.PlayerID)
		if attacker == nil {
			continue
		}

		if s.Value.TargetID == "" || s.Value.ItemID == "" {
			results = append(results, AttackResult{Attacker: attacker.Name, Skipped: true})
			continue
		}

		target := r.playerLocked(s.Value.TargetID)
		i := attacker.itemIndex(s.Value.ItemID)
		if target == nil || target.Vitality <= 0 || i < 0 {
			continue
		}

		item := attacker.Items[i]
		attacker.Items = slices.Delete(attacker.Items, i, i+1)
		target.Vitality += item.Magnitude

		results = append(results, AttackResult{
			Attacker:  attacker.Name,
			Target:    target.Name,
			Magnitude: item.Magnitude,
			Item:      item.Name,
		})
	}

	return results
}

func (a *Auction) closeTargeting(r *Room, ph *Targeting) {
	results := a.strike(r, ph.actions.Drain())
	gone := r.sweepLocked(func(p *Player) bool { return p.Vitality <= 0 })

	if len(r.players) <= 1 {
		r.finished = true
		r.resetLocked()

		over := GameOver{
			Results:    results,
			Eliminated: gone,
			Players:    r.rosterLocked(),
		}
		if len(r.players) == 1 {
			name := r.players[0].Name
			over.Winner = &name
		}

		r.log.Info().Int("round", r.round).Int("survivors", len(r.players)).Msg("game over")
		r.broadcastLocked(EventGameOver, over)

		return
	}

	for _, p := range r.players {
		p.Purse += a.rules.Bonus
	}
	r.phase = Idle{}

	r.broadcastLocked(EventAttackResults, AttackResults{
		Round:      r.round,
		Results:    results,
		Eliminated: gone,
		Players:    r.rosterLocked(),
	})
}

// Bid submits a sealed bid on the open item. Affordability is only checked at
// resolution; an unaffordable bid is simply not eligible.
func (r *Room) Bid(id string, amount int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	ph, ok := r.phase.(*Bidding)
	if r.closed || !ok || !ph.bids.Submit(id, amount) {
		return false
	}
	r.lastActive = r.now()

	r.game.settle(r)

	return true
}

// Attack submits a targeting action. An empty target or item is a pass.
func (r *Room) Attack(id string, action Action) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	ph, ok := r.phase.(*Targeting)
	if r.closed || !ok || !ph.actions.Submit(id, action) {
		return false
	}
	r.lastActive = r.now()

	r.game.settle(r)

	return true
}
