package adapter

import (
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-catalog-mirror/internal/utils"
)

// tokenHolder stores the access token shared by adapter implementations.
type tokenHolder struct {
	mu     sync.RWMutex
	token  string
	userID string

	// now is the clock used to check the token expiry; nil means time.Now.
	now func() time.Time
}

func (t *tokenHolder) SetToken(token string) {
	token = strings.TrimSpace(token)
	userID, err := utils.ParseUserIDFromJWT(token)
	if err != nil {
		userID = ""
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.token = token
	t.userID = userID
}

func (t *tokenHolder) Token() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.token
}

// UserID returns the subject of the current token. An expired token has no
// user, so user-scoped operations treat the client as unauthenticated.
func (t *tokenHolder) UserID() (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.userID == "" {
		return "", false
	}

	now := time.Now
	if t.now != nil {
		now = t.now
	}
	expired, err := utils.TokenExpired(t.token, now())
	if err != nil || expired {
		return "", false
	}
	return t.userID, true
}
