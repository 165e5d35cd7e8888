package core

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
)

func TestSessionStore_LoginPersistsOnce(t *testing.T) {
	t.Parallel()

	stored := User{ID: "1", Name: "Ana", Email: "a@b.com"}
	auth := &mockAuth{LoginFunc: func(_ context.Context, data LoginData) (User, error) {
		if data.Email == "a@b.com" && data.Password == "x" {
			return stored, nil
		}
		return User{}, ErrIncorrectPassword
	}}
	storage := newMemStorage()
	s := NewSessionStore(discardLogger(), auth, storage, HydrationStrict)

	s.Login(context.Background(), LoginData{Email: "a@b.com", Password: "x"})

	st := s.State()
	if !st.IsAuthenticated || st.User == nil || *st.User != stored {
		t.Fatalf("expected authenticated as %+v, got %+v", stored, st)
	}
	if st.IsLoading || st.Error != "" {
		t.Fatalf("expected settled state, got %+v", st)
	}
	if storage.sets != 1 {
		t.Fatalf("expected exactly one storage write, got %d", storage.sets)
	}

	var persisted User
	if err := json.Unmarshal([]byte(storage.items[SessionKey]), &persisted); err != nil {
		t.Fatalf("persisted value is not a user: %v", err)
	}
	if persisted != stored {
		t.Fatalf("expected %+v persisted, got %+v", stored, persisted)
	}
}

func TestSessionStore_LoginFailureKeepsMessage(t *testing.T) {
	t.Parallel()

	auth := &mockAuth{LoginFunc: func(context.Context, LoginData) (User, error) {
		return User{}, ErrEmailNotFound
	}}
	storage := newMemStorage()
	s := NewSessionStore(discardLogger(), auth, storage, HydrationStrict)

	s.Login(context.Background(), LoginData{Email: "nobody@b.com", Password: "secret"})

	st := s.State()
	if st.Error != "Email não encontrado" || st.IsAuthenticated || st.IsLoading {
		t.Fatalf("unexpected state: %+v", st)
	}
	if storage.sets != 0 {
		t.Fatalf("failed login must not persist, got %d writes", storage.sets)
	}

	s.ClearError()
	if s.State().Error != "" {
		t.Fatalf("expected error cleared")
	}
}

func TestSessionStore_ErrorNormalization(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		fn   func() (User, error)
		want string
	}{
		{"error value", func() (User, error) { return User{}, errBoom }, "X"},
		{"empty message", func() (User, error) { return User{}, errors.New("") }, "Erro desconhecido"},
		{"string panic", func() (User, error) { panic("boom") }, "Erro desconhecido"},
		{"error panic", func() (User, error) { panic(errBoom) }, "X"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			auth := &mockAuth{RegisterFunc: func(context.Context, RegisterData) (User, error) { return tc.fn() }}
			s := NewSessionStore(discardLogger(), auth, newMemStorage(), HydrationStrict)

			s.Register(context.Background(), RegisterData{Name: "Ana", Email: "a@b.com"})

			st := s.State()
			if st.Error != tc.want {
				t.Fatalf("expected error %q, got %q", tc.want, st.Error)
			}
			if st.IsLoading {
				t.Fatalf("expected loading to end")
			}
		})
	}
}

func TestSessionStore_LogoutLeavesLoadingAlone(t *testing.T) {
	t.Parallel()

	storage := newMemStorage()
	s := NewSessionStore(discardLogger(), &mockAuth{}, storage, HydrationStrict)
	s.state.Update(func(st *SessionState) {
		st.User = &User{ID: "1", Name: "Ana", Email: "a@b.com"}
		st.IsAuthenticated = true
		st.IsLoading = true
		st.Error = "old"
	})
	storage.items[SessionKey] = `{"id":"1"}`

	s.Logout(context.Background())

	st := s.State()
	if st.User != nil || st.IsAuthenticated || st.Error != "" {
		t.Fatalf("expected logged out, got %+v", st)
	}
	if !st.IsLoading {
		t.Fatalf("logout must not touch isLoading")
	}
	if _, ok := storage.items[SessionKey]; ok {
		t.Fatalf("expected persisted session removed")
	}

	// logging out twice is harmless
	s.Logout(context.Background())
	if st := s.State(); st.User != nil || st.IsAuthenticated {
		t.Fatalf("unexpected state after second logout: %+v", st)
	}
}

func TestSessionStore_InitializeAuth(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		raw        string
		policy     HydrationPolicy
		wantAuth   bool
		wantRemove bool
	}{
		{"valid record", `{"id":1,"name":"Ana","email":"a@b.com"}`, HydrationStrict, true, false},
		{"invalid json strict", `{not json`, HydrationStrict, false, true},
		{"null strict", `null`, HydrationStrict, false, true},
		{"missing email strict", `{"id":1,"name":"Ana"}`, HydrationStrict, false, true},
		{"missing email lenient", `{"id":1,"name":"Ana"}`, HydrationLenient, true, false},
		{"invalid json lenient", `{not json`, HydrationLenient, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			storage := newMemStorage()
			storage.items[SessionKey] = tc.raw
			s := NewSessionStore(discardLogger(), &mockAuth{}, storage, tc.policy)

			s.InitializeAuth(context.Background())

			st := s.State()
			if st.IsAuthenticated != tc.wantAuth || (st.User != nil) != tc.wantAuth {
				t.Fatalf("expected authenticated=%v, got %+v", tc.wantAuth, st)
			}
			if removed := storage.removes > 0; removed != tc.wantRemove {
				t.Fatalf("expected removed=%v, got %d removes", tc.wantRemove, storage.removes)
			}
		})
	}
}

func TestSessionStore_InitializeAuthNothingStored(t *testing.T) {
	t.Parallel()

	storage := newMemStorage()
	storage.getErr = errors.New("disk on fire")
	s := NewSessionStore(discardLogger(), &mockAuth{}, storage, HydrationStrict)

	notified := 0
	s.Subscribe(func(SessionState) { notified++ })

	s.InitializeAuth(context.Background())
	storage.getErr = nil
	s.InitializeAuth(context.Background())

	if st := s.State(); st != (SessionState{}) {
		t.Fatalf("expected untouched state, got %+v", st)
	}
	if notified != 0 {
		t.Fatalf("expected no notifications, got %d", notified)
	}
}

func TestSessionStore_StaleLoginDropped(t *testing.T) {
	t.Parallel()

	slowStarted := make(chan struct{})
	releaseSlow := make(chan struct{})

	auth := &mockAuth{LoginFunc: func(_ context.Context, data LoginData) (User, error) {
		if data.Email == "slow@b.com" {
			close(slowStarted)
			<-releaseSlow
			return User{ID: "1", Name: "Slow", Email: data.Email}, nil
		}
		return User{ID: "2", Name: "Fast", Email: data.Email}, nil
	}}
	storage := newMemStorage()
	s := NewSessionStore(discardLogger(), auth, storage, HydrationStrict)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.Login(context.Background(), LoginData{Email: "slow@b.com"})
	}()

	<-slowStarted
	s.Login(context.Background(), LoginData{Email: "fast@b.com"})
	close(releaseSlow)
	wg.Wait()

	st := s.State()
	if st.User == nil || st.User.Name != "Fast" {
		t.Fatalf("expected the later login to win, got %+v", st.User)
	}
	if st.IsLoading {
		t.Fatalf("expected loading to end")
	}

	var persisted User
	if err := json.Unmarshal([]byte(storage.items[SessionKey]), &persisted); err != nil {
		t.Fatalf("persisted value is not a user: %v", err)
	}
	if persisted != *st.User {
		t.Fatalf("storage diverged from state: state=%s storage=%s", st.User.Name, persisted.Name)
	}
	if storage.sets != 1 {
		t.Fatalf("expected only the winning login to be stored, got %d writes", storage.sets)
	}

	// a fresh store restores the same user
	restored := NewSessionStore(discardLogger(), auth, storage, HydrationStrict)
	restored.InitializeAuth(context.Background())
	if u := restored.State().User; u == nil || u.Name != "Fast" {
		t.Fatalf("expected Fast restored, got %+v", u)
	}
}

func TestSessionStore_PersistFailureIsActionError(t *testing.T) {
	t.Parallel()

	auth := &mockAuth{LoginFunc: func(context.Context, LoginData) (User, error) {
		return User{ID: "1", Name: "Ana", Email: "a@b.com"}, nil
	}}
	storage := newMemStorage()
	storage.setErr = errBoom
	s := NewSessionStore(discardLogger(), auth, storage, HydrationStrict)

	s.Login(context.Background(), LoginData{Email: "a@b.com", Password: "secret"})

	st := s.State()
	if st.Error != "X" || st.IsAuthenticated || st.User != nil || st.IsLoading {
		t.Fatalf("unexpected state: %+v", st)
	}
}

func TestParseHydrationPolicy(t *testing.T) {
	t.Parallel()

	if p, err := ParseHydrationPolicy(""); err != nil || p != HydrationStrict {
		t.Fatalf("expected strict default, got %q %v", p, err)
	}
	if p, err := ParseHydrationPolicy("Lenient"); err != nil || p != HydrationLenient {
		t.Fatalf("expected lenient, got %q %v", p, err)
	}
	if _, err := ParseHydrationPolicy("loose"); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}
