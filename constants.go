package main

// Session constants
const (
	SessionCookieName = "session_id"

	// SessionWordKey is the fixed key the word-of-day selection is stored
	// under in a player's session.
	SessionWordKey = "genedle.word"
)

// Route constants
const (
	RouteGenedleSession  = "/games/genedle"
	RouteSpellingSession = "/games/spelling-gene"

	RouteGenedleLetters  = "/api/v1/genedle-letters/:session"
	RouteGenedleGuess    = "/api/v1/genedle-guess"
	RouteSpellingLetters = "/api/v1/spelling-gene/:seed/:minLength/:minWords/:numLetters"
	RouteSpellingGuess   = "/api/v1/spelling-gene-guess/:seed/:minLength/:minWords/:numLetters/:guess"

	RouteHealthz = "/healthz"
)

// Context key constants
const (
	requestIDKey contextKey = "request_id"
)

type contextKey string
