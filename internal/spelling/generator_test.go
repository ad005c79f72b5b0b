package spelling

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genedle/internal/genenames"
)

// fakeRegistry answers every prefix query for a letter with symbols spelled
// entirely from that letter, lengths 3 through 13. Any letter set then admits
// the center letter's symbols, which keeps generation deterministic without
// depending on which letters the seed draws.
type fakeRegistry struct {
	empty bool
	calls atomic.Int32
}

func (f *fakeRegistry) SearchPrefix(ctx context.Context, prefix string) (genenames.SearchResult, error) {
	f.calls.Add(1)
	if f.empty {
		return genenames.SearchResult{}, nil
	}
	var symbols []string
	for length := 3; length <= 13; length++ {
		symbols = append(symbols, strings.Repeat(prefix, length))
	}
	return genenames.SearchResult{NumFound: len(symbols), Symbols: symbols}, nil
}

func (f *fakeRegistry) SearchSuffix(ctx context.Context, suffix string) (genenames.SearchResult, error) {
	f.calls.Add(1)
	return genenames.SearchResult{}, nil
}

func (f *fakeRegistry) SearchExact(ctx context.Context, symbol string) (genenames.SearchResult, error) {
	f.calls.Add(1)
	return genenames.SearchResult{}, nil
}

func assertPuzzleInvariants(t *testing.T, puzzle Puzzle, params Params) {
	t.Helper()

	assert.Len(t, puzzle.Outer, params.NumLetters-1)
	assert.NotContains(t, puzzle.Outer, puzzle.Center)

	seen := map[string]struct{}{puzzle.Center: {}}
	for _, letter := range puzzle.Outer {
		_, dup := seen[letter]
		assert.False(t, dup, "letter %q chosen twice", letter)
		seen[letter] = struct{}{}
	}

	require.GreaterOrEqual(t, len(puzzle.ValidSymbols), params.MinWords)
	for _, symbol := range puzzle.ValidSymbols {
		assert.GreaterOrEqual(t, utf8.RuneCountInString(symbol), params.MinLength, "symbol %q too short", symbol)
		assert.Contains(t, symbol, puzzle.Center, "symbol %q misses the center letter", symbol)
		for _, r := range symbol {
			_, ok := seen[string(r)]
			assert.True(t, ok, "symbol %q uses letter %q outside the puzzle", symbol, string(r))
		}
	}
}

func TestPuzzleInvariants(t *testing.T) {
	for _, numLetters := range []int{6, 7} {
		params := Params{MinLength: 4, MinWords: 10, NumLetters: numLetters, Seed: 20277}
		service := NewService(&fakeRegistry{})

		puzzle, err := service.Puzzle(context.Background(), params)
		require.NoError(t, err)
		assertPuzzleInvariants(t, puzzle, params)
	}
}

func TestPuzzleFiltersShortSymbols(t *testing.T) {
	params := Params{MinLength: 4, MinWords: 10, NumLetters: 7, Seed: 20277}
	service := NewService(&fakeRegistry{})

	puzzle, err := service.Puzzle(context.Background(), params)
	require.NoError(t, err)

	// The fake serves length-3 symbols too; none may survive.
	for _, symbol := range puzzle.ValidSymbols {
		assert.GreaterOrEqual(t, len(symbol), 4)
	}
}

func TestPuzzleDeterministicAndCached(t *testing.T) {
	params := Params{MinLength: 4, MinWords: 10, NumLetters: 7, Seed: 99}
	registry := &fakeRegistry{}
	service := NewService(registry)

	first, err := service.Puzzle(context.Background(), params)
	require.NoError(t, err)
	fetches := registry.calls.Load()

	second, err := service.Puzzle(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, fetches, registry.calls.Load(), "cached puzzle must not refetch the corpus")
}

func TestPuzzleDeterministicAcrossInstances(t *testing.T) {
	params := Params{MinLength: 4, MinWords: 10, NumLetters: 7, Seed: 7}

	first, err := NewService(&fakeRegistry{}).Puzzle(context.Background(), params)
	require.NoError(t, err)
	second, err := NewService(&fakeRegistry{}).Puzzle(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPuzzleGenerationFailed(t *testing.T) {
	params := Params{MinLength: 4, MinWords: 10, NumLetters: 7, Seed: 1}
	service := NewService(&fakeRegistry{empty: true})

	_, err := service.Puzzle(context.Background(), params)
	require.ErrorIs(t, err, ErrGenerationFailed)
}

func TestContains(t *testing.T) {
	params := Params{MinLength: 4, MinWords: 10, NumLetters: 6, Seed: 20277}
	service := NewService(&fakeRegistry{})

	puzzle, err := service.Puzzle(context.Background(), params)
	require.NoError(t, err)
	require.NotEmpty(t, puzzle.ValidSymbols)

	assert.True(t, service.Contains(context.Background(), params, puzzle.ValidSymbols[0]))
	assert.False(t, service.Contains(context.Background(), params, "NOT-A-SYMBOL"))
}

func TestContainsFalseWhenGenerationFails(t *testing.T) {
	params := Params{MinLength: 4, MinWords: 10, NumLetters: 7, Seed: 1}
	service := NewService(&fakeRegistry{empty: true})

	assert.False(t, service.Contains(context.Background(), params, "MIB2"))
}

func TestLetters(t *testing.T) {
	puzzle := Puzzle{Center: "G", Outer: []string{"E", "N", "S", "T", "A"}}
	metadata := puzzle.Letters()
	assert.Equal(t, "G", metadata.CenterLetter)
	assert.Equal(t, []string{"E", "N", "S", "T", "A"}, metadata.OuterLetters)
}
