/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"math/rand/v2"

	"github.com/google/uuid"
)

var (
	Colors  = []string{"red", "blue", "yellow", "green"}
	Prompts = []string{PromptButtonColor, PromptTextContent, PromptTextColor}
)

const (
	PromptButtonColor = "buttonColor"
	PromptTextContent = "textContent"
	PromptTextColor   = "textColor"
)

// DefaultQuestions is the built-in question list for the questions game.
var DefaultQuestions = []string{
	"Who is the funniest?",
	"Who would survive a zombie apocalypse?",
	"Who is the most dramatic?",
	"Who is most likely to forget their own birthday?",
	"Who is the best storyteller?",
	"Who would win a reality TV show?",
	"Who is most likely to become famous?",
	"Who takes the longest to get ready?",
	"Who would be the worst roommate?",
	"Who is most likely to get lost with GPS on?",
	"Who gives the best advice?",
	"Who is the most competitive?",
	"Who would eat something off the floor?",
	"Who is most likely to start a cult?",
	"Who sends the longest texts?",
	"Who is secretly a genius?",
	"Who would survive the longest without their phone?",
	"Who is most likely to cry at a movie?",
	"Who laughs at their own jokes the most?",
	"Who would make the best spy?",
}

// Item categories. Consumables are applied to the winner as soon as they are
// bought; everything else is held until used on a target.
const (
	CategoryWeapon = "weapon"
	CategoryHeal   = "heal"
	CategoryDrink  = "drink"
	CategoryWater  = "water"
)

var WeaponCatalog = []Item{
	{ID: "dagger", Name: "Dagger", Category: CategoryWeapon, Magnitude: -2},
	{ID: "sword", Name: "Sword", Category: CategoryWeapon, Magnitude: -3},
	{ID: "axe", Name: "Axe", Category: CategoryWeapon, Magnitude: -4},
	{ID: "crossbow", Name: "Crossbow", Category: CategoryWeapon, Magnitude: -5},
	{ID: "warhammer", Name: "Warhammer", Category: CategoryWeapon, Magnitude: -6},
	{ID: "bandage", Name: "Bandage", Category: CategoryHeal, Magnitude: 2},
	{ID: "potion", Name: "Potion", Category: CategoryHeal, Magnitude: 4},
	{ID: "elixir", Name: "Elixir", Category: CategoryHeal, Magnitude: 6},
}

var DrinkCatalog = []Item{
	{ID: "beer", Name: "Beer", Category: CategoryDrink, Magnitude: -2},
	{ID: "wine", Name: "Wine", Category: CategoryDrink, Magnitude: -3},
	{ID: "whiskey", Name: "Whiskey", Category: CategoryDrink, Magnitude: -4},
	{ID: "tequila", Name: "Tequila", Category: CategoryDrink, Magnitude: -5},
	{ID: "absinthe", Name: "Absinthe", Category: CategoryDrink, Magnitude: -6},
	{ID: "sparkling-water", Name: "Sparkling Water", Category: CategoryWater, Magnitude: 2},
	{ID: "water", Name: "Water", Category: CategoryWater, Magnitude: 4},
}

// shuffle is a Fisher-Yates permutation of a copy of s.
func shuffle[T any](rng *rand.Rand, s []T) []T {
	out := append([]T(nil), s...)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

func pick[T any](rng *rand.Rand, s []T) T {
	return s[rng.IntN(len(s))]
}

// draw picks n catalog entries with replacement. Each one gets its own
// instance id so that no two players ever hold the same item.
func draw(rng *rand.Rand, catalog []Item, n int) []Item {
	if len(catalog) == 0 || n < 1 {
		return nil
	}

	items := make([]Item, n)
	for i := range items {
		item := pick(rng, catalog)
		item.ID = uuid.NewString()
		items[i] = item
	}
	return items
}

// ColorOption is one button of a colors round.
type ColorOption struct {
	ButtonColor string `json:"buttonColor"`
	TextColor   string `json:"textColor"`
	TextContent string `json:"textContent"`
}

func (o ColorOption) field(prompt string) string {
	switch prompt {
	case PromptButtonColor:
		return o.ButtonColor
	case PromptTextColor:
		return o.TextColor
	case PromptTextContent:
		return o.TextContent
	}
	return ""
}

// ColorRound asks players to pick the option whose Prompt attribute is
// TargetColor.
type ColorRound struct {
	Prompt      string        `json:"prompt"`
	TargetColor string        `json:"targetColor"`
	Options     []ColorOption `json:"options"`
}

// newColorRound never gives an option the same button and text color.
func newColorRound(rng *rand.Rand) ColorRound {
	buttons := shuffle(rng, Colors)
	contents := shuffle(rng, Colors)

	texts := shuffle(rng, Colors)
	for clashes(buttons, texts) {
		texts = shuffle(rng, Colors)
	}

	options := make([]ColorOption, len(Colors))
	for i := range options {
		options[i] = ColorOption{
			ButtonColor: buttons[i],
			TextColor:   texts[i],
			TextContent: contents[i],
		}
	}

	return ColorRound{
		Prompt:      pick(rng, Prompts),
		TargetColor: pick(rng, Colors),
		Options:     options,
	}
}

func clashes(a, b []string) bool {
	for i := range a {
		if a[i] == b[i] {
			return true
		}
	}
	return false
}
