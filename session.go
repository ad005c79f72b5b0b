package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// PlayerSession holds the per-player values backing the games. Only the
// word-of-day selection lives here today; the map leaves room for more keys.
type PlayerSession struct {
	Values         map[string]int64
	LastAccessTime time.Time
}

// getOrCreateSession retrieves the session ID from the cookie or creates a
// new one.
func (app *App) getOrCreateSession(c *gin.Context) string {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil || len(sessionID) < 10 {
		sessionID = uuid.NewString()
		c.SetSameSite(http.SameSiteStrictMode)
		secure := app.IsProduction
		c.SetCookie(SessionCookieName, sessionID, int(app.CookieMaxAge.Seconds()), "/", "", secure, true)
		logInfo("Created new session: %s", sessionID)
	}
	return sessionID
}

// wordOfDay returns the session's stored word-of-day selection, defaulting to
// today's day number and persisting it on first access so repeat visits reuse
// the same puzzle.
func (app *App) wordOfDay(sessionID string) int64 {
	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()

	session, exists := app.Sessions[sessionID]
	if !exists {
		session = &PlayerSession{Values: make(map[string]int64)}
		app.Sessions[sessionID] = session
	}
	session.LastAccessTime = time.Now()

	if seed, ok := session.Values[SessionWordKey]; ok {
		return seed
	}

	seed := daysFromCE(time.Now())
	session.Values[SessionWordKey] = seed
	logInfo("Session %s assigned word-of-day seed %d", sessionID, seed)
	return seed
}

// daysFromCE returns the day number of t in the proleptic Gregorian calendar,
// counting 0001-01-01 as day 1. Every player starting on the same day gets
// the same default seed, hence the same daily puzzle.
func daysFromCE(t time.Time) int64 {
	// 1970-01-01 is day 719163.
	const unixEpochDays = 719163
	return t.UTC().Unix()/86400 + unixEpochDays
}

// cleanupStaleSessions drops sessions idle longer than maxAge and reports how
// many were removed.
func (app *App) cleanupStaleSessions(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()

	stale := lo.PickBy(app.Sessions, func(_ string, session *PlayerSession) bool {
		return session.LastAccessTime.Before(cutoff)
	})
	for id := range stale {
		delete(app.Sessions, id)
	}

	if len(stale) > 0 {
		logInfo("Session cleanup completed: removed %d sessions older than %v", len(stale), maxAge)
	}
	return len(stale)
}

// startSessionSweeper runs cleanupStaleSessions periodically until the
// returned stop function is called.
func (app *App) startSessionSweeper() func() {
	ticker := time.NewTicker(10 * time.Minute)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				app.cleanupStaleSessions(app.SessionTimeout)
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() { close(done) }
}
