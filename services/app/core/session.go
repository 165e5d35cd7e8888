package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

// SessionKey is the LocalStorage key holding the serialized current user.
const SessionKey = "user"

// HydrationPolicy decides which persisted user records InitializeAuth trusts.
type HydrationPolicy string

const (
	// HydrationStrict only restores records with an id, a name and a valid email.
	HydrationStrict HydrationPolicy = "strict"
	// HydrationLenient restores any decodable non-null record.
	HydrationLenient HydrationPolicy = "lenient"
)

func ParseHydrationPolicy(s string) (HydrationPolicy, error) {
	switch HydrationPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case HydrationStrict, "":
		return HydrationStrict, nil
	case HydrationLenient:
		return HydrationLenient, nil
	default:
		return "", fmt.Errorf("unknown hydration policy %q", s)
	}
}

type SessionState struct {
	User            *User
	IsAuthenticated bool
	IsLoading       bool
	Error           string
}

type SessionStore struct {
	log     *slog.Logger
	auth    Auth
	storage LocalStorage
	policy  HydrationPolicy

	state *Container[SessionState]
	gens  generations
}

func NewSessionStore(log *slog.Logger, auth Auth, storage LocalStorage, policy HydrationPolicy) *SessionStore {
	if policy == "" {
		policy = HydrationStrict
	}
	return &SessionStore{
		log:     log,
		auth:    auth,
		storage: storage,
		policy:  policy,
		state:   NewContainer(SessionState{}),
	}
}

func (s *SessionStore) State() SessionState { return s.state.State() }

func (s *SessionStore) Subscribe(fn func(SessionState)) func() { return s.state.Subscribe(fn) }

func (s *SessionStore) Login(ctx context.Context, data LoginData) {
	s.authenticate(ctx, "login", func() (User, error) {
		return s.auth.Login(ctx, data)
	})
}

func (s *SessionStore) Register(ctx context.Context, data RegisterData) {
	s.authenticate(ctx, "register", func() (User, error) {
		return s.auth.Register(ctx, data)
	})
}

// authenticate is shared by login and register. Both write the same
// session slice, so they share one generation counter.
func (s *SessionStore) authenticate(ctx context.Context, action string, fn func() (User, error)) {
	token := s.gens.begin("authenticate")
	s.state.Update(func(st *SessionState) {
		st.IsLoading = true
		st.Error = ""
	})

	var user User
	err := call(s.log, action, func() error {
		var err error
		user, err = fn()
		return err
	})

	// The slot is written under the state lock, after the staleness check,
	// so a dropped response never reaches storage.
	applied := s.state.Apply(func(st *SessionState) bool {
		if !s.gens.current("authenticate", token) {
			return false
		}
		if err == nil {
			err = call(s.log, action, func() error { return s.persist(ctx, user) })
		}
		st.IsLoading = false
		if err != nil {
			st.Error = failureMessage(err)
			return true
		}
		u := user
		st.User = &u
		st.IsAuthenticated = true
		return true
	})

	switch {
	case !applied:
		s.log.Debug("stale session response dropped", "action", action)
	case err != nil:
		s.log.Debug("session action failed", "action", action, "error", err)
	default:
		s.log.Debug("session started", "action", action, "user_id", user.ID)
	}
}

func (s *SessionStore) persist(ctx context.Context, u User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.storage.SetItem(ctx, SessionKey, string(b))
}

func (s *SessionStore) Logout(ctx context.Context) {
	if err := s.storage.RemoveItem(ctx, SessionKey); err != nil {
		s.log.Warn("cannot remove persisted session", "error", err)
	}
	s.state.Update(func(st *SessionState) {
		st.User = nil
		st.IsAuthenticated = false
		st.Error = ""
	})
}

func (s *SessionStore) ClearError() {
	s.state.Update(func(st *SessionState) {
		st.Error = ""
	})
}

// InitializeAuth restores the persisted user, if any. When nothing usable is
// stored the state is left exactly as it is.
func (s *SessionStore) InitializeAuth(ctx context.Context) {
	raw, ok, err := s.storage.GetItem(ctx, SessionKey)
	if err != nil {
		s.log.Warn("cannot read persisted session", "error", err)
		return
	}
	if !ok || raw == "" {
		return
	}

	var u *User
	if err := json.Unmarshal([]byte(raw), &u); err != nil || u == nil {
		s.log.Warn("persisted session is not a user record", "error", err)
		s.discard(ctx)
		return
	}
	if s.policy == HydrationStrict && !wellFormed(*u) {
		s.log.Warn("persisted session rejected", "policy", s.policy)
		s.discard(ctx)
		return
	}

	s.state.Update(func(st *SessionState) {
		st.User = u
		st.IsAuthenticated = true
	})
}

func (s *SessionStore) discard(ctx context.Context) {
	if s.policy != HydrationStrict {
		return
	}
	if err := s.storage.RemoveItem(ctx, SessionKey); err != nil {
		s.log.Warn("cannot remove persisted session", "error", err)
	}
}

func wellFormed(u User) bool {
	return u.ID != "" && strings.TrimSpace(u.Name) != "" && ValidateEmail(u.Email) == nil
}
