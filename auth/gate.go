// Package auth implements the password gate in front of the file transfer
// handlers: exact-match password checks plus a process-wide cooldown after
// any failed attempt.
package auth

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"sync"
	"time"

	"protectedstorage/constants"
)

// Denial describes a rejected authentication attempt.
type Denial struct {
	Status  int
	Message string
	// BadPassword marks denials that recorded a new failed attempt, as
	// opposed to cooldown rejections. The caller is expected to dispatch
	// the invalid-password notification for these.
	BadPassword bool
}

// Gate holds the process-wide lockout state. A single timestamp records the
// most recent failed password check across both directions; while the
// cooldown window is active every attempt is rejected, correct or not.
//
// The cooldown check and the failure recording happen under the same mutex
// so that concurrent invalid attempts see a consistent remaining time and
// exactly one of them starts the window.
type Gate struct {
	mu            sync.Mutex
	lastInvalidAt time.Time

	cooldown time.Duration
	now      func() time.Time
}

// NewGate creates a gate with the standard cooldown window.
func NewGate() *Gate {
	return &Gate{
		cooldown: constants.AuthCooldown,
		now:      time.Now,
	}
}

// Check validates a submitted credential against the expected password for
// the given direction. It returns nil when authenticated, or a Denial
// describing the rejection. Missing-header and missing-setting conditions
// are the caller's responsibility; they never touch the lockout state.
func (g *Gate) Check(direction Direction, submitted, expected string) *Denial {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.lastInvalidAt.IsZero() {
		remaining := g.cooldown - g.now().Sub(g.lastInvalidAt)
		if remaining > 0 {
			return &Denial{
				Status:  http.StatusBadRequest,
				Message: fmt.Sprintf(constants.MsgPleaseWait, int(remaining.Seconds())),
			}
		}
	}

	if subtle.ConstantTimeCompare([]byte(submitted), []byte(expected)) == 1 {
		return nil
	}

	g.lastInvalidAt = g.now()
	return &Denial{
		Status:      http.StatusUnauthorized,
		Message:     fmt.Sprintf(constants.MsgInvalidPassword, direction),
		BadPassword: true,
	}
}
