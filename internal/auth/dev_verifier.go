package auth

import (
	"context"
	"strings"
	"sync"
)

const devAdminPrefix = "admin:"

// DevVerifier treats the id token itself as the uid.
// - A token prefixed with "admin:" yields an admin identity.
// - Registered identities supply email and profile data.
// - Unless Strict is set, unknown uids are accepted with a fallback email.
// Use this ONLY for development/testing.
type DevVerifier struct {
	Strict bool

	mu       sync.RWMutex
	users    map[string]devUser
	failures map[string]error
}

type devUser struct {
	identity Identity
	profile  Profile
}

func NewDevVerifier() *DevVerifier {
	return &DevVerifier{
		users:    make(map[string]devUser),
		failures: make(map[string]error),
	}
}

// Register adds a known identity. Its uid becomes a valid token.
func (v *DevVerifier) Register(id Identity, p Profile) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.users[id.UID] = devUser{identity: id, profile: p}
}

// FailProfile makes Profile lookups for uid return err.
func (v *DevVerifier) FailProfile(uid string, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.failures[uid] = err
}

func (v *DevVerifier) Verify(_ context.Context, idToken string) (*Identity, error) {
	token := strings.TrimSpace(idToken)
	admin := false
	if strings.HasPrefix(token, devAdminPrefix) {
		admin = true
		token = strings.TrimPrefix(token, devAdminPrefix)
	}
	if token == "" {
		return nil, ErrInvalidToken
	}

	v.mu.RLock()
	u, ok := v.users[token]
	v.mu.RUnlock()

	if !ok {
		if v.Strict {
			return nil, ErrInvalidToken
		}
		u.identity = Identity{UID: token, Email: token + "@firebase.local"}
	}

	id := u.identity
	id.Admin = id.Admin || admin
	return &id, nil
}

func (v *DevVerifier) Profile(_ context.Context, uid string) (*Profile, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if err, ok := v.failures[uid]; ok {
		return nil, err
	}
	if u, ok := v.users[uid]; ok {
		p := u.profile
		return &p, nil
	}
	if v.Strict {
		return nil, ErrInvalidToken
	}
	return &Profile{DisplayName: uid}, nil
}
