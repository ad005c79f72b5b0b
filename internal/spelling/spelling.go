// Package spelling implements the Spelling-Bee-style gene-symbol game: a
// center letter plus outer letters chosen so that enough registry symbols can
// be spelled from them, and membership checks against that symbol set.
package spelling

import (
	"slices"
	"strings"
)

// Params keys one puzzle instance. Equal params always resolve to the same
// puzzle.
type Params struct {
	MinLength  int
	MinWords   int
	NumLetters int
	Seed       int64
}

// Puzzle is a generated game: the chosen letters and every known symbol that
// can be spelled from them. Immutable once generated.
type Puzzle struct {
	Center       string
	Outer        []string
	ValidSymbols []string // sorted
}

// Contains reports whether word is spellable in this puzzle.
func (p Puzzle) Contains(word string) bool {
	_, found := slices.BinarySearch(p.ValidSymbols, word)
	return found
}

// Letters returns the player-facing view of the puzzle, without the symbol
// set.
func (p Puzzle) Letters() Metadata {
	return Metadata{OuterLetters: p.Outer, CenterLetter: p.Center}
}

// Metadata is the letters-only representation served to players.
type Metadata struct {
	OuterLetters []string `json:"outer_letters"`
	CenterLetter string   `json:"center_letter"`
}

// alphabet holds the 27 symbols puzzle letters are drawn from. Gene symbols
// may contain a hyphen, so it counts as a letter here.
var alphabet = strings.Split("ABCDEFGHIJKLMNOPQRSTUVWXYZ-", "")
