package genedle

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"unicode/utf8"

	"genedle/internal/cache"
	"genedle/internal/genenames"
)

// ErrNoSymbolFound means the registry returned no usable symbol for the
// seed's prefix letter.
var ErrNoSymbolFound = errors.New("genedle: no gene symbol found")

// Sanitized messages surfaced to players when the registry is unreachable.
// The underlying cause stays wrapped for logs and never reaches a response.
var (
	errSymbolUnavailable   = errors.New("unable to fetch gene symbol")
	errRegistryUnavailable = errors.New("unable to query genenames.org")
)

type validationKey struct {
	word    string
	session int64
	mode    Mode
}

// Service evaluates guesses against per-seed secret symbols. Secrets and
// validation outcomes are memoized so concurrent players on one session see
// one consistent puzzle and the registry is queried once per input.
type Service struct {
	registry    genenames.Client
	words       *cache.Cache[int64, string]
	validations *cache.Cache[validationKey, *Invalid]
}

func NewService(registry genenames.Client) *Service {
	return &Service{
		registry:    registry,
		words:       cache.New[int64, string](),
		validations: cache.New[validationKey, *Invalid](),
	}
}

// Word returns the secret symbol for a seed, selecting it on first use and
// caching it for the lifetime of the process.
func (s *Service) Word(ctx context.Context, seed int64) (string, error) {
	return s.words.GetOrCompute(seed, func() (string, error) {
		return s.selectWord(ctx, seed)
	})
}

// WordLength returns the rune length of the seed's secret symbol.
func (s *Service) WordLength(ctx context.Context, seed int64) (int, error) {
	word, err := s.Word(ctx, seed)
	if err != nil {
		return 0, err
	}
	return utf8.RuneCountInString(word), nil
}

// selectWord picks the secret for a seed. Both draws consume one PCG stream
// seeded from the seed alone, so the mapping from seed to symbol is fixed:
// first a uniform prefix letter A-Z, then a uniform index into the registry's
// matches for that letter, taken in response order.
func (s *Service) selectWord(ctx context.Context, seed int64) (string, error) {
	rng := rand.New(rand.NewPCG(uint64(seed), 0))
	letter := string(rune('A' + rng.IntN(26)))

	result, err := s.registry.SearchPrefix(ctx, letter)
	if err != nil {
		return "", fmt.Errorf("select word for seed %d: %w", seed, err)
	}
	if result.NumFound == 0 {
		return "", ErrNoSymbolFound
	}

	idx := rng.IntN(result.NumFound)
	if idx >= len(result.Symbols) {
		// numFound counts matches beyond the returned page of docs.
		return "", ErrNoSymbolFound
	}
	return result.Symbols[idx], nil
}

// Evaluate validates and scores a guess. It always returns a structured
// outcome; registry failures surface as internal_error with a sanitized
// message.
func (s *Service) Evaluate(ctx context.Context, guess Guess) Outcome {
	key := validationKey{word: guess.Word, session: guess.Session, mode: guess.Mode}
	invalid, err := s.validations.GetOrCompute(key, func() (*Invalid, error) {
		return s.validate(ctx, guess)
	})
	if err != nil {
		return InvalidOutcome(ReasonInternalError, sanitize(err))
	}
	if invalid != nil {
		return InvalidOutcome(invalid.Reason, invalid.Message)
	}

	secret, err := s.Word(ctx, guess.Session)
	if err != nil {
		return InvalidOutcome(ReasonInternalError, errSymbolUnavailable.Error())
	}

	result, isCorrect := score([]rune(guess.Word), []rune(secret))
	return ValidOutcome(isCorrect, result)
}

// validate runs the short-circuiting checks: secret length, guess length,
// then (hard mode only) an exact-match dictionary lookup. A nil Invalid means
// the guess may be scored. Errors mark transient registry failures, which the
// cache does not store.
func (s *Service) validate(ctx context.Context, guess Guess) (*Invalid, error) {
	secretLen, err := s.WordLength(ctx, guess.Session)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errSymbolUnavailable, err)
	}

	guessLen := utf8.RuneCountInString(guess.Word)
	if guessLen < secretLen {
		return &Invalid{Reason: ReasonNotEnoughLetters}, nil
	}
	if guessLen > secretLen {
		return &Invalid{Reason: ReasonTooManyLetters}, nil
	}

	if guess.Mode != ModeHard {
		return nil, nil
	}

	result, err := s.registry.SearchExact(ctx, guess.Word)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errRegistryUnavailable, err)
	}
	if result.NumFound >= 1 && slices.Contains(result.Symbols, guess.Word) {
		return nil, nil
	}
	return &Invalid{Reason: ReasonNotInCorpus}, nil
}

// WordCount reports the number of cached secrets, for health reporting.
func (s *Service) WordCount() int {
	return s.words.Len()
}

func sanitize(err error) string {
	switch {
	case errors.Is(err, errSymbolUnavailable):
		return errSymbolUnavailable.Error()
	case errors.Is(err, errRegistryUnavailable):
		return errRegistryUnavailable.Error()
	default:
		return "internal error"
	}
}
