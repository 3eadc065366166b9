package credentials

import (
	"sync"

	"github.com/desertthunder/mvx/internal/shared"
	"golang.org/x/time/rate"
)

// Throttle limits how often each username may attempt to log in.
//
// Each username gets its own token bucket refilled at limit attempts per second with room for burst attempts.
// Attempts beyond that fail with [shared.ErrTooManyAttempts] without reaching the wrapped [Authenticator].
type Throttle struct {
	next     Authenticator
	limit    rate.Limit
	burst    int
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewThrottle wraps next. A non-positive limit disables throttling; a burst below 1 is raised to 1.
func NewThrottle(next Authenticator, limit float64, burst int) *Throttle {
	l := rate.Limit(limit)
	if limit <= 0 {
		l = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &Throttle{next: next, limit: l, burst: burst, limiters: make(map[string]*rate.Limiter)}
}

func (t *Throttle) Authenticate(username, password string) (bool, error) {
	if !t.limiter(username).Allow() {
		return false, shared.ErrTooManyAttempts
	}
	return t.next.Authenticate(username, password)
}

func (t *Throttle) limiter(username string) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()

	l, ok := t.limiters[username]
	if !ok {
		l = rate.NewLimiter(t.limit, t.burst)
		t.limiters[username] = l
	}
	return l
}
