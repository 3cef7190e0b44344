// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/directorscut/internal/notify/email"
	"github.com/taibuivan/directorscut/internal/platform/apperr"
	"github.com/taibuivan/directorscut/internal/platform/sec"
	"github.com/taibuivan/directorscut/internal/users/auth"
)

// # In-memory stores

type memoryUsers struct {
	mu      sync.Mutex
	users   map[string]*auth.User
	roles   map[string]sec.UserRole
	roleErr error
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: map[string]*auth.User{}, roles: map[string]sec.UserRole{}}
}

func (m *memoryUsers) FindByID(_ context.Context, id string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, apperr.NotFound("User")
}

func (m *memoryUsers) FindByEmail(_ context.Context, address string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if strings.EqualFold(user.Email, address) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (m *memoryUsers) Create(_ context.Context, user *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *user
	m.users[user.ID] = &clone
	m.roles[user.ID] = user.Role
	return nil
}

func (m *memoryUsers) UpdatePassword(_ context.Context, userID, newHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[userID].PasswordHash = newHash
	return nil
}

func (m *memoryUsers) MarkVerified(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[userID].IsVerified = true
	return nil
}

func (m *memoryUsers) TouchLogin(_ context.Context, userID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[userID].LastLoginAt = &at
	return nil
}

func (m *memoryUsers) FindRole(_ context.Context, userID string) (sec.UserRole, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.roleErr != nil {
		return "", m.roleErr
	}
	return m.roles[userID], nil
}

func (m *memoryUsers) setRole(userID string, role sec.UserRole) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roles[userID] = role
}

func (m *memoryUsers) get(id string) auth.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.users[id]
}

type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]*auth.Session
	pruned   chan struct{}
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: map[string]*auth.Session{}}
}

func (m *memorySessions) Create(_ context.Context, session *auth.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *session
	m.sessions[session.ID] = &clone
	return nil
}

func (m *memorySessions) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, session := range m.sessions {
		if session.TokenHash == tokenHash && !session.IsRevoked {
			clone := *session
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Session")
}

func (m *memorySessions) Revoke(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID].IsRevoked = true
	return nil
}

func (m *memorySessions) RevokeAll(_ context.Context, userID string) error {
	return m.RevokeOthers(context.Background(), userID, "")
}

func (m *memorySessions) RevokeOthers(_ context.Context, userID, currentSessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, session := range m.sessions {
		if session.UserID == userID && id != currentSessionID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (m *memorySessions) DeleteExpired(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for id, session := range m.sessions {
		if !session.ExpiresAt.After(now) {
			delete(m.sessions, id)
		}
	}
	if m.pruned != nil {
		select {
		case m.pruned <- struct{}{}:
		default:
		}
	}
	return nil
}

func (m *memorySessions) active(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, session := range m.sessions {
		if session.UserID == userID && !session.IsRevoked {
			count++
		}
	}
	return count
}

type memoryTokens struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newMemoryTokens() *memoryTokens {
	return &memoryTokens{tokens: map[string]string{}}
}

func (m *memoryTokens) Set(_ context.Context, tokenHash, userID string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[tokenHash] = userID
	return nil
}

func (m *memoryTokens) Get(_ context.Context, tokenHash string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if userID, ok := m.tokens[tokenHash]; ok {
		return userID, nil
	}
	return "", apperr.ValidationError("Token is invalid or expired")
}

func (m *memoryTokens) Delete(_ context.Context, tokenHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, tokenHash)
	return nil
}

// # Collaborators

// claimTokens issues readable fake access tokens.
type claimTokens struct{}

func (claimTokens) GenerateAccessToken(userID, _ string, role string, _ time.Duration) (string, error) {
	return userID + "|" + role, nil
}

// outbox records dispatched emails.
type outbox struct {
	mu       sync.Mutex
	requests []email.Request
	err      error
}

func (o *outbox) Dispatch(_ context.Context, request email.Request) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return o.err
	}
	o.requests = append(o.requests, request)
	return nil
}

func (o *outbox) last() (email.Request, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.requests) == 0 {
		return email.Request{}, false
	}
	return o.requests[len(o.requests)-1], true
}

func (o *outbox) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.requests)
}

// # Fixture

var links = auth.Links{
	SiteURL:          "http://localhost:5173",
	ResetRedirectURL: "http://localhost:5173/reset-password",
}

type fixture struct {
	users    *memoryUsers
	sessions *memorySessions
	resets   *memoryTokens
	verifies *memoryTokens
	mail     *outbox
	logs     *bytes.Buffer
	service  *auth.Service
}

func newFixture() *fixture {
	f := &fixture{
		users:    newMemoryUsers(),
		sessions: newMemorySessions(),
		resets:   newMemoryTokens(),
		verifies: newMemoryTokens(),
		mail:     &outbox{},
		logs:     &bytes.Buffer{},
	}
	f.service = auth.NewService(f.users, f.users, f.sessions, f.resets, f.verifies,
		claimTokens{}, f.mail, links, slog.New(slog.NewTextHandler(f.logs, nil)))
	return f
}

const password = "correct horse battery"

// register creates an account through the service and returns it.
func (f *fixture) register(address string) *auth.User {
	user, err := f.service.Register(context.Background(), auth.RegisterInput{
		Email: address, Password: password, FirstName: "Agnès", LastName: "Varda",
	})
	if err != nil {
		panic(err)
	}
	return user
}

var errStore = errors.New("connection refused")
