package spelling

import (
	"context"
	"errors"
	"log"
	"math/rand/v2"
	"slices"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"genedle/internal/cache"
	"genedle/internal/genenames"
)

// ErrGenerationFailed means no letter set satisfying the constraints was
// found within the retry cap. Terminal for the call; the service does not
// retry across calls.
var ErrGenerationFailed = errors.New("spelling: failed to generate a valid puzzle")

const (
	// maxAttempts bounds the in-memory letter-set search.
	maxAttempts = 10_000
	// extraPoolLetters widens the corpus fetch beyond the letters a single
	// puzzle needs, so most letter-set draws find their symbols in the pool.
	extraPoolLetters = 5
)

// Service generates puzzles and answers membership queries. Puzzles are
// memoized per parameter tuple, so every player asking for the same tuple
// plays the same board.
type Service struct {
	registry genenames.Client
	puzzles  *cache.Cache[Params, Puzzle]
}

func NewService(registry genenames.Client) *Service {
	return &Service{
		registry: registry,
		puzzles:  cache.New[Params, Puzzle](),
	}
}

// Puzzle returns the puzzle for the given parameters, generating it on first
// use.
func (s *Service) Puzzle(ctx context.Context, params Params) (Puzzle, error) {
	return s.puzzles.GetOrCompute(params, func() (Puzzle, error) {
		return s.generate(ctx, params)
	})
}

// Contains reports whether word is spellable in the puzzle for params. A
// puzzle that cannot be generated accepts nothing: the answer is false, not
// an error.
func (s *Service) Contains(ctx context.Context, params Params, word string) bool {
	puzzle, err := s.Puzzle(ctx, params)
	if err != nil {
		log.Printf("[WARN] Membership check with no puzzle for %+v: %v", params, err)
		return false
	}
	return puzzle.Contains(word)
}

// PuzzleCount reports the number of cached puzzles, for health reporting.
func (s *Service) PuzzleCount() int {
	return s.puzzles.Len()
}

// generate runs the corpus-first search: one pooled registry fetch over a
// sample of letters, then bounded random letter-set draws filtered against
// the pool. All randomness comes from a PCG stream seeded by params.Seed, in
// a fixed draw order (pool sample first, then one shuffle per attempt), so a
// tuple always yields the same puzzle.
func (s *Service) generate(ctx context.Context, params Params) (Puzzle, error) {
	rng := rand.New(rand.NewPCG(uint64(params.Seed), 0))

	pool := s.fetchPool(ctx, rng, params)
	symbols := lo.Keys(pool)
	log.Printf("[INFO] Generating puzzle %+v from a pool of %d symbols", params, len(symbols))

	for attempt := 0; attempt < maxAttempts; attempt++ {
		letters := shuffledAlphabet(rng)[:params.NumLetters]
		center := letters[len(letters)-1]
		centerRune, _ := utf8.DecodeRuneInString(center)

		letterSet := make(map[rune]struct{}, len(letters))
		for _, letter := range letters {
			r, _ := utf8.DecodeRuneInString(letter)
			letterSet[r] = struct{}{}
		}

		valid := lo.Filter(symbols, func(symbol string, _ int) bool {
			if !strings.ContainsRune(symbol, centerRune) {
				return false
			}
			for _, r := range symbol {
				if _, ok := letterSet[r]; !ok {
					return false
				}
			}
			return true
		})

		if len(valid) >= params.MinWords {
			sort.Strings(valid)
			return Puzzle{
				Center:       center,
				Outer:        letters[:len(letters)-1],
				ValidSymbols: valid,
			}, nil
		}
	}

	return Puzzle{}, ErrGenerationFailed
}

// fetchPool gathers candidate symbols for a sample of numLetters+5 shuffled
// alphabet letters. Each letter costs one prefix and one suffix query; the
// letters are fetched concurrently, and a failed letter is skipped rather
// than failing the pool — correctness depends only on the final filtering.
func (s *Service) fetchPool(ctx context.Context, rng *rand.Rand, params Params) map[string]struct{} {
	sampleSize := min(params.NumLetters+extraPoolLetters, len(alphabet))
	sample := shuffledAlphabet(rng)[:sampleSize]

	var mu sync.Mutex
	pool := make(map[string]struct{})

	g, ctx := errgroup.WithContext(ctx)
	for _, letter := range sample {
		g.Go(func() error {
			symbols, err := s.fetchLetter(ctx, letter)
			if err != nil {
				log.Printf("[WARN] Pool fetch for letter %q failed: %v", letter, err)
				return nil
			}
			mu.Lock()
			for _, symbol := range symbols {
				if utf8.RuneCountInString(symbol) >= params.MinLength {
					pool[symbol] = struct{}{}
				}
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return pool
}

// fetchLetter returns symbols starting or ending with the letter.
func (s *Service) fetchLetter(ctx context.Context, letter string) ([]string, error) {
	starting, err := s.registry.SearchPrefix(ctx, letter)
	if err != nil {
		return nil, err
	}
	ending, err := s.registry.SearchSuffix(ctx, letter)
	if err != nil {
		return nil, err
	}
	return append(starting.Symbols, ending.Symbols...), nil
}

func shuffledAlphabet(rng *rand.Rand) []string {
	letters := slices.Clone(alphabet)
	rng.Shuffle(len(letters), func(i, j int) {
		letters[i], letters[j] = letters[j], letters[i]
	})
	return letters
}
