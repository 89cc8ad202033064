package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bft-labs/distclient/internal/domain"
)

// SessionRepository stores the session as <namespace>:token and
// <namespace>:is_logged_in.
type SessionRepository struct {
	kv        KV
	namespace string
}

func NewSessionRepository(kv KV, namespace string) *SessionRepository {
	return &SessionRepository{kv: kv, namespace: namespace}
}

func (r *SessionRepository) tokenKey() string    { return r.namespace + ":token" }
func (r *SessionRepository) loggedInKey() string { return r.namespace + ":is_logged_in" }

// Load reads both keys in one MGET. Absent keys yield the empty session.
func (r *SessionRepository) Load(ctx context.Context) (domain.Session, error) {
	values, ok, err := r.kv.MGet(ctx, r.tokenKey(), r.loggedInKey())
	if err != nil {
		return domain.Session{}, err
	}

	var s domain.Session
	if ok[0] {
		s.Token = values[0]
	}
	if ok[1] {
		b, err := strconv.ParseBool(values[1])
		if err != nil {
			return domain.Session{}, fmt.Errorf("decode %s: %w", r.loggedInKey(), err)
		}
		s.IsLoggedIn = b
	}
	return s, nil
}

// Save writes both keys in one MULTI/EXEC.
func (r *SessionRepository) Save(ctx context.Context, s domain.Session) error {
	return r.kv.SetAll(ctx, map[string]string{
		r.tokenKey():    s.Token,
		r.loggedInKey(): strconv.FormatBool(s.IsLoggedIn),
	})
}
