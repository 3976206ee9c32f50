// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jeranaias/talentdesk/internal/model"
)

// ============================================================================
// IN-MEMORY STATE
// ============================================================================

// HistoryLimit is the number of analyses returned by the history endpoint.
const HistoryLimit = 10

var (
	errUserExists         = errors.New("Username or email already exists")
	errInvalidCredentials = errors.New("Invalid credentials")
	errNoConversation     = errors.New("Conversation not found")
)

type user struct {
	id           int64
	username     string
	email        string
	passwordHash []byte
}

type storedMessage struct {
	sender    model.Sender
	content   string
	createdAt time.Time
}

type storedConversation struct {
	id        int64
	userID    int64
	title     string
	createdAt time.Time
	messages  []storedMessage
}

type storedResume struct {
	id               int64
	userID           int64
	originalFilename string
	analysis         string
	score            float64
	jobDescription   string
	uploadedAt       time.Time
}

// state holds every user, session, conversation and analysis. Nothing is
// persisted; a restart starts from empty.
type state struct {
	mu sync.Mutex

	now        func() time.Time
	bcryptCost int

	nextUserID   int64
	nextConvID   int64
	nextResumeID int64

	users         map[int64]*user
	sessions      map[string]int64
	conversations map[int64]*storedConversation
	resumes       []*storedResume
}

func newState(now func() time.Time, bcryptCost int) *state {
	return &state{
		now:           now,
		bcryptCost:    bcryptCost,
		users:         make(map[int64]*user),
		sessions:      make(map[string]int64),
		conversations: make(map[int64]*storedConversation),
	}
}

// ============================================================================
// ACCOUNTS AND SESSIONS
// ============================================================================

// register creates a user and returns its id. Usernames and emails are
// unique across both fields.
func (s *state) register(username, email, password string) (int64, error) {
	// SECURITY: bcrypt runs outside the lock; it is deliberately slow.
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.username == username || u.email == email {
			return 0, errUserExists
		}
	}
	s.nextUserID++
	s.users[s.nextUserID] = &user{id: s.nextUserID, username: username, email: email, passwordHash: hash}
	return s.nextUserID, nil
}

// authenticate matches login against either the username or the email.
func (s *state) authenticate(login, password string) (int64, error) {
	s.mu.Lock()
	var found *user
	for _, u := range s.users {
		if u.username == login || u.email == login {
			found = u
			break
		}
	}
	s.mu.Unlock()

	if found == nil {
		return 0, errInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(found.passwordHash, []byte(password)) != nil {
		return 0, errInvalidCredentials
	}
	return found.id, nil
}

// openSession returns a new session token for userID.
func (s *state) openSession(userID int64) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = userID
	s.mu.Unlock()
	return token
}

func (s *state) closeSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

func (s *state) sessionUser(token string) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.sessions[token]
	return id, ok
}

// ============================================================================
// CONVERSATIONS
// ============================================================================

// listConversations returns the user's conversations, newest first. Ties on
// created_at fall back to the higher id.
func (s *state) listConversations(userID int64) []storedConversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []storedConversation
	for _, c := range s.conversations {
		if c.userID == userID {
			out = append(out, storedConversation{id: c.id, title: c.title, createdAt: c.createdAt})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].createdAt.Equal(out[j].createdAt) {
			return out[i].createdAt.After(out[j].createdAt)
		}
		return out[i].id > out[j].id
	})
	return out
}

func (s *state) createConversation(userID int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextConvID++
	s.conversations[s.nextConvID] = &storedConversation{
		id:        s.nextConvID,
		userID:    userID,
		title:     model.DefaultTitle,
		createdAt: s.now(),
	}
	return s.nextConvID
}

// conversation returns a copy of a conversation owned by userID.
func (s *state) conversation(userID, id int64) (storedConversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.conversations[id]
	if !ok || c.userID != userID {
		return storedConversation{}, errNoConversation
	}
	cp := *c
	cp.messages = append([]storedMessage(nil), c.messages...)
	return cp, nil
}

// appendUserMessage stores a user message and derives the title while the
// conversation still has the default one.
func (s *state) appendUserMessage(userID, id int64, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.conversations[id]
	if !ok || c.userID != userID {
		return errNoConversation
	}
	c.messages = append(c.messages, storedMessage{sender: model.SenderUser, content: text, createdAt: s.now()})
	if c.title == model.DefaultTitle {
		c.title = model.DeriveTitle(text, model.ServerTitleRunes)
	}
	return nil
}

func (s *state) appendBotMessage(id int64, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.conversations[id]; ok {
		c.messages = append(c.messages, storedMessage{sender: model.SenderBot, content: text, createdAt: s.now()})
	}
}

// ============================================================================
// RESUMES
// ============================================================================

func (s *state) recordResume(userID int64, filename, analysis string, score float64, jobDescription string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(jobDescription) == "" {
		jobDescription = "N/A"
	}
	s.nextResumeID++
	s.resumes = append(s.resumes, &storedResume{
		id:               s.nextResumeID,
		userID:           userID,
		originalFilename: filename,
		analysis:         analysis,
		score:            score,
		jobDescription:   jobDescription,
		uploadedAt:       s.now(),
	})
}

// resumeHistory returns at most HistoryLimit analyses, newest first.
func (s *state) resumeHistory(userID int64) []storedResume {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []storedResume
	for i := len(s.resumes) - 1; i >= 0 && len(out) < HistoryLimit; i-- {
		if r := s.resumes[i]; r.userID == userID {
			out = append(out, *r)
		}
	}
	return out
}
