// Package demo is an in-memory stand-in for the EORA backend. It serves the
// same REST endpoints as the real server so the TUI and the CLI can be run,
// and tested, without one.
package demo

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eora-ai/eora/internal/session"
)

// DefaultPoints is the balance a fresh store starts with.
const DefaultPoints int64 = 1000

// ErrNotFound is returned for unknown session ids.
var ErrNotFound = errors.New("session not found")

// ErrInjected is returned by operations set up to fail.
var ErrInjected = errors.New("injected failure")

// Store holds sessions, their messages, and the user's points.
type Store struct {
	mu       sync.Mutex
	sessions []session.Session // newest first
	messages map[string][]session.Message
	points   int64
	level    int

	failCreate bool
	failPoints bool
	failChat   bool
	failDelete map[string]bool

	now   func() time.Time
	newID func() string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		messages:   make(map[string][]session.Message),
		points:     DefaultPoints,
		level:      1,
		failDelete: make(map[string]bool),
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// SetFailCreate makes session creation fail.
func (s *Store) SetFailCreate(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failCreate = fail
}

// SetFailPoints makes the points endpoint fail.
func (s *Store) SetFailPoints(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failPoints = fail
}

// SetFailChat makes chat replies fail.
func (s *Store) SetFailChat(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failChat = fail
}

// FailDelete makes deleting any of ids fail.
func (s *Store) FailDelete(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.failDelete[id] = true
	}
}

// SetPoints sets the balance.
func (s *Store) SetPoints(points int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.points = points
}

// Sessions returns the sessions, newest first.
func (s *Store) Sessions() []session.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := slices.Clone(s.sessions)
	for i := range out {
		out[i].MessageCount = len(s.messages[out[i].ID])
	}
	return out
}

// Create adds a session and returns its id.
func (s *Store) Create(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreate {
		return "", ErrInjected
	}
	sess := session.Session{ID: s.newID(), Name: name, CreatedAt: s.now()}
	s.sessions = slices.Insert(s.sessions, 0, sess)
	return sess.ID, nil
}

// Delete removes a session and its messages.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failDelete[id] {
		return ErrInjected
	}
	idx := s.indexLocked(id)
	if idx < 0 {
		return ErrNotFound
	}
	s.sessions = slices.Delete(s.sessions, idx, idx+1)
	delete(s.messages, id)
	return nil
}

// Messages returns the history of a session.
func (s *Store) Messages(id string) ([]session.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexLocked(id) < 0 {
		return nil, ErrNotFound
	}
	return slices.Clone(s.messages[id]), nil
}

// Points returns the balance and level.
func (s *Store) Points() (int64, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failPoints {
		return 0, 0, ErrInjected
	}
	return s.points, s.level, nil
}

// Chat records message in sessionID and returns the reply. Each exchange
// costs one point. Unknown ids, such as locally created sessions, are
// registered on first use.
func (s *Store) Chat(sessionID, message string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failChat {
		return "", ErrInjected
	}
	now := s.now()
	if s.indexLocked(sessionID) < 0 {
		s.sessions = slices.Insert(s.sessions, 0, session.Session{
			ID:        sessionID,
			Name:      session.NewSessionName(now),
			CreatedAt: now,
		})
	}
	reply := Reply(message)
	s.messages[sessionID] = append(s.messages[sessionID],
		session.Message{Role: session.RoleUser, Content: message, Timestamp: now},
		session.Message{Role: session.RoleAssistant, Content: reply, Timestamp: now},
	)
	if s.points > 0 {
		s.points--
	}
	return reply, nil
}

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.sessions, func(sess session.Session) bool { return sess.ID == id })
}

// Reply is the canned answer to message.
func Reply(message string) string {
	return fmt.Sprintf("\"%s\"에 대해 생각해 보았어요.\n\n- 질문을 조금 더 구체적으로 나눠 볼까요?\n- 어떤 부분이 가장 궁금한가요?", message)
}

// Seed fills the store with a few sessions for demos.
func (s *Store) Seed(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seeds := []struct {
		name string
		age  time.Duration
		msgs []session.Message
	}{
		{
			name: "Go 동시성 공부",
			age:  5 * time.Minute,
			msgs: []session.Message{
				{Role: session.RoleUser, Content: "채널과 뮤텍스는 언제 써야 하나요?"},
				{Role: session.RoleAssistant, Content: "**소유권을 넘길 때는 채널**, 상태를 보호할 때는 뮤텍스가 자연스러워요.\n\n```go\nvar mu sync.Mutex\nmu.Lock()\ncount++\nmu.Unlock()\n```"},
			},
		},
		{
			name: "여행 계획",
			age:  3 * time.Hour,
			msgs: []session.Message{
				{Role: session.RoleUser, Content: "부산 2박 3일 코스 추천해줘"},
				{Role: session.RoleAssistant, Content: "1. 해운대와 동백섬\n2. 감천문화마을\n3. 자갈치 시장"},
			},
		},
		{name: "새 세션 2024. 1. 5.", age: 72 * time.Hour},
	}

	for _, seed := range seeds {
		created := now.Add(-seed.age)
		id := s.newID()
		s.sessions = append(s.sessions, session.Session{ID: id, Name: seed.name, CreatedAt: created})
		for _, m := range seed.msgs {
			m.Timestamp = created
			s.messages[id] = append(s.messages[id], m)
		}
	}
}
