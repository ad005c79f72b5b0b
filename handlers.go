package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"genedle/internal/genedle"
	"genedle/internal/spelling"
)

// genedleSessionHandler ensures the session has a word-of-day selection and
// returns it, so repeat visits replay the same puzzle.
func (app *App) genedleSessionHandler(c *gin.Context) {
	sessionID := app.getOrCreateSession(c)
	seed := app.wordOfDay(sessionID)
	c.JSON(http.StatusOK, strconv.FormatInt(seed, 10))
}

// spellingSessionHandler bootstraps a session for the spelling game. The
// puzzle itself is addressed by its parameter tuple, so there is nothing to
// store yet.
func (app *App) spellingSessionHandler(c *gin.Context) {
	app.getOrCreateSession(c)
	c.JSON(http.StatusOK, "")
}

// genedleLettersHandler returns the secret's letter count for a session seed,
// or -1 when the secret cannot be resolved.
func (app *App) genedleLettersHandler(c *gin.Context) {
	session, err := strconv.ParseInt(c.Param("session"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session must be an integer"})
		return
	}

	length, err := app.Genedle.WordLength(c.Request.Context(), session)
	if err != nil {
		logWarn("Failed to resolve secret length for session %d: %v", session, err)
		c.JSON(http.StatusOK, -1)
		return
	}
	c.JSON(http.StatusOK, length)
}

// genedleGuessHandler evaluates a guess. The response is always a structured
// outcome; registry trouble surfaces inside it, never as a transport error.
func (app *App) genedleGuessHandler(c *gin.Context) {
	var guess genedle.Guess
	if err := c.ShouldBindJSON(&guess); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid guess payload"})
		return
	}
	guess.Word = normalizeGuess(guess.Word)

	outcome := app.Genedle.Evaluate(c.Request.Context(), guess)
	logInfo("Session %d guessed %q (%s): %s", guess.Session, guess.Word, guess.Mode, outcome.Type)
	c.JSON(http.StatusOK, outcome)
}

// spellingLettersHandler returns the letter set for a puzzle tuple. A puzzle
// that cannot be generated degrades to empty metadata rather than an error.
func (app *App) spellingLettersHandler(c *gin.Context) {
	params, err := parseSpellingParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	puzzle, err := app.Spelling.Puzzle(c.Request.Context(), params)
	if err != nil {
		logWarn("Failed to generate puzzle for %+v: %v", params, err)
		c.JSON(http.StatusOK, spelling.Metadata{OuterLetters: []string{}})
		return
	}
	c.JSON(http.StatusOK, puzzle.Letters())
}

// spellingGuessHandler reports whether a candidate word belongs to the
// puzzle for a tuple. Plain boolean, no feedback.
func (app *App) spellingGuessHandler(c *gin.Context) {
	params, err := parseSpellingParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	guess := normalizeGuess(c.Param("guess"))
	c.JSON(http.StatusOK, app.Spelling.Contains(c.Request.Context(), params, guess))
}

// healthzHandler returns a JSON health check with server stats.
func (app *App) healthzHandler(c *gin.Context) {
	app.SessionMutex.RLock()
	sessions := len(app.Sessions)
	app.SessionMutex.RUnlock()

	uptime := time.Since(app.StartTime)
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"env":            map[bool]string{true: "production", false: "development"}[app.IsProduction],
		"words_cached":   app.Genedle.WordCount(),
		"puzzles_cached": app.Spelling.PuzzleCount(),
		"sessions":       sessions,
		"uptime":         formatUptime(uptime),
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}

// parseSpellingParams reads the puzzle tuple from the route path.
func parseSpellingParams(c *gin.Context) (spelling.Params, error) {
	seed, err := strconv.ParseInt(c.Param("seed"), 10, 64)
	if err != nil {
		return spelling.Params{}, fmt.Errorf("seed must be an integer")
	}
	minLength, err := strconv.Atoi(c.Param("minLength"))
	if err != nil || minLength < 1 {
		return spelling.Params{}, fmt.Errorf("minLength must be a positive integer")
	}
	minWords, err := strconv.Atoi(c.Param("minWords"))
	if err != nil || minWords < 1 {
		return spelling.Params{}, fmt.Errorf("minWords must be a positive integer")
	}
	numLetters, err := strconv.Atoi(c.Param("numLetters"))
	if err != nil || numLetters < 2 || numLetters > 27 {
		return spelling.Params{}, fmt.Errorf("numLetters must be between 2 and 27")
	}

	return spelling.Params{
		MinLength:  minLength,
		MinWords:   minWords,
		NumLetters: numLetters,
		Seed:       seed,
	}, nil
}

// normalizeGuess trims and uppercases a guess string for comparison.
func normalizeGuess(input string) string {
	return strings.ToUpper(strings.TrimSpace(input))
}
