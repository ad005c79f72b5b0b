// Package genedle implements the Wordle-style daily gene-symbol game: a
// deterministic secret symbol per seed, guess validation, and duplicate-aware
// per-letter feedback.
package genedle

// Mode selects the game variant. Hard mode additionally requires guesses to
// be verified registry symbols.
type Mode string

const (
	ModeNormal Mode = "normal"
	ModeHard   Mode = "hard"
)

// Feedback classifies one guessed letter against the secret.
type Feedback string

const (
	FeedbackCorrect Feedback = "correct"
	FeedbackPresent Feedback = "present"
	FeedbackAbsent  Feedback = "absent"
)

// Reason identifies why a guess was rejected.
type Reason string

const (
	ReasonInternalError    Reason = "internal_error"
	ReasonNotEnoughLetters Reason = "not_enough_letters"
	ReasonTooManyLetters   Reason = "too_many_letters"
	ReasonNotInCorpus      Reason = "not_in_corpus"
)

// Guess is one submitted guess against a session's secret symbol.
type Guess struct {
	Word    string `json:"word"`
	Session int64  `json:"session"`
	Mode    Mode   `json:"mode"`
}

// Invalid carries the rejection reason for a guess that failed validation.
type Invalid struct {
	Reason  Reason `json:"reason"`
	Message string `json:"message,omitempty"`
}

// Valid carries the per-letter feedback for an accepted guess.
type Valid struct {
	IsCorrect bool       `json:"is_correct"`
	Result    []Feedback `json:"result"`
}

// Outcome is the tagged result of evaluating a guess: Data holds an Invalid
// or a Valid depending on Type.
type Outcome struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// InvalidOutcome wraps a rejection reason in an Outcome envelope.
func InvalidOutcome(reason Reason, message string) Outcome {
	return Outcome{Type: "invalid", Data: Invalid{Reason: reason, Message: message}}
}

// ValidOutcome wraps scoring feedback in an Outcome envelope.
func ValidOutcome(isCorrect bool, result []Feedback) Outcome {
	return Outcome{Type: "valid", Data: Valid{IsCorrect: isCorrect, Result: result}}
}
