// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/directorscut/internal/platform/apperr"
	"github.com/taibuivan/directorscut/internal/platform/sec"
	"github.com/taibuivan/directorscut/internal/users/account"
	"github.com/taibuivan/directorscut/internal/users/auth"
	"github.com/taibuivan/directorscut/pkg/pagination"
)

// memoryAccounts keeps accounts and roles in memory.
type memoryAccounts struct {
	mu       sync.Mutex
	users    map[string]*auth.User
	deleted  map[string]bool
	assigner map[string]string
}

func newMemoryAccounts(users ...auth.User) *memoryAccounts {
	m := &memoryAccounts{
		users:    make(map[string]*auth.User),
		deleted:  make(map[string]bool),
		assigner: make(map[string]string),
	}
	for _, user := range users {
		stored := user
		m.users[user.ID] = &stored
	}
	return m
}

func (m *memoryAccounts) FindByID(_ context.Context, id string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok || m.deleted[id] {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (m *memoryAccounts) Update(_ context.Context, user *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.ID]; !ok || m.deleted[user.ID] {
		return apperr.NotFound("User")
	}
	user.UpdatedAt = time.Now()
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *memoryAccounts) SoftDelete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok || m.deleted[id] {
		return apperr.NotFound("User")
	}
	m.deleted[id] = true
	return nil
}

func (m *memoryAccounts) List(_ context.Context, params pagination.Params) ([]auth.User, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	active := make([]auth.User, 0, len(m.users))
	for id, user := range m.users {
		if !m.deleted[id] {
			active = append(active, *user)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Email < active[j].Email })

	start := min(params.Offset(), len(active))
	end := min(start+params.Limit, len(active))
	return active[start:end], len(active), nil
}

func (m *memoryAccounts) SetRole(_ context.Context, userID string, role sec.UserRole, assignedBy string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.Role = role
	m.assigner[userID] = assignedBy
	return nil
}

func (m *memoryAccounts) role(id string) sec.UserRole {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[id].Role
}

func (m *memoryAccounts) isDeleted(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deleted[id]
}

// memorySessions is the session view over a fixed set of rows.
type memorySessions struct {
	mu        sync.Mutex
	sessions  map[string][]account.SessionInfo
	revokeErr error
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: make(map[string][]account.SessionInfo)}
}

func (m *memorySessions) add(userID, id, refreshToken string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[userID] = append(m.sessions[userID], account.SessionInfo{
		ID:        id,
		UserAgent: "Mozilla/5.0",
		IPAddress: "203.0.113.7",
		CreatedAt: time.Now().Add(-time.Hour),
		ExpiresAt: time.Now().Add(time.Hour),
		TokenHash: sec.HashToken(refreshToken),
	})
}

func (m *memorySessions) FindActiveByUserID(_ context.Context, userID string) ([]account.SessionInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]account.SessionInfo(nil), m.sessions[userID]...), nil
}

func (m *memorySessions) Revoke(_ context.Context, userID, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sessions := m.sessions[userID]
	for i, session := range sessions {
		if session.ID == sessionID {
			m.sessions[userID] = append(sessions[:i], sessions[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("Session")
}

func (m *memorySessions) RevokeAll(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.revokeErr != nil {
		return m.revokeErr
	}
	delete(m.sessions, userID)
	return nil
}

func (m *memorySessions) count(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions[userID])
}

// # Fixtures

const (
	masterID = "0190f5a2-0000-7000-8000-00000000000a"
	adminID  = "0190f5a2-0000-7000-8000-00000000000b"
	userID   = "0190f5a2-0000-7000-8000-00000000000c"
	otherID  = "0190f5a2-0000-7000-8000-00000000000d"

	laptopID = "0190f5a2-0000-7000-8000-0000000000e1"
	phoneID  = "0190f5a2-0000-7000-8000-0000000000e2"
)

var errConnection = errors.New("connection reset by peer")

func seedUsers() []auth.User {
	return []auth.User{
		{ID: masterID, Email: "master@directorscut.test", FirstName: "Ida", Role: sec.RoleMaster, IsVerified: true},
		{ID: adminID, Email: "curator@directorscut.test", FirstName: "Kelly", Role: sec.RoleAdmin, IsVerified: true},
		{ID: userID, Email: "viewer@directorscut.test", FirstName: "Sam", Role: sec.RoleUser, IsVerified: true},
		{ID: otherID, Email: "guest@directorscut.test", FirstName: "Noor", Role: sec.RoleUser},
	}
}

type fixture struct {
	accounts *memoryAccounts
	sessions *memorySessions
	service  *account.Service
}

func newFixture() *fixture {
	accounts := newMemoryAccounts(seedUsers()...)
	sessions := newMemorySessions()
	return &fixture{
		accounts: accounts,
		sessions: sessions,
		service:  account.NewService(accounts, sessions, discardLogger()),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr(value string) *string { return &value }
