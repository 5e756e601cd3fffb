package session

import (
	"slices"
	"strings"
	"time"
)

// Session is one chat session as the backend reports it. The wire field may
// be "id" or "_id"; the api package normalizes both into ID.
type Session struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	MessageCount int       `json:"message_count"`
}

// Message is one chat message in a session.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Roles used by the backend.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// IsValidID reports whether id can name a session. Empty and whitespace-only
// ids, and the literal strings "undefined" and "null", are rejected.
func IsValidID(id string) bool {
	trimmed := strings.TrimSpace(id)
	return trimmed != "" && trimmed != "undefined" && trimmed != "null"
}

// State is the controller's mutable view of sessions.
type State struct {
	sessions []Session
	selected map[string]struct{}
	current  string
	version  uint64
}

// NewState returns an empty state with the given current pointer.
func NewState(current string) *State {
	return &State{
		selected: make(map[string]struct{}),
		current:  current,
	}
}

// Replace swaps in a freshly loaded list. Selected ids that are no longer
// listed are dropped.
func (s *State) Replace(sessions []Session) {
	s.sessions = slices.Clone(sessions)
	s.version++
	for id := range s.selected {
		if !s.Contains(id) {
			delete(s.selected, id)
		}
	}
}

// Prepend puts sess at the top of the list. An existing entry with the same
// id is replaced.
func (s *State) Prepend(sess Session) {
	s.sessions = slices.DeleteFunc(s.sessions, func(existing Session) bool {
		return existing.ID == sess.ID
	})
	s.sessions = slices.Insert(s.sessions, 0, sess)
	s.version++
}

// RemoveIDs filters out every session whose id is in ids and returns how many
// were removed. Removed ids leave the selection too.
func (s *State) RemoveIDs(ids []string) int {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
		delete(s.selected, id)
	}
	before := len(s.sessions)
	s.sessions = slices.DeleteFunc(s.sessions, func(sess Session) bool {
		_, ok := drop[sess.ID]
		return ok
	})
	s.version++
	return before - len(s.sessions)
}

// Toggle adds id to or removes it from the selection. It returns false when
// id isn't in the list, in which case nothing changes.
func (s *State) Toggle(id string, selected bool) bool {
	if !s.Contains(id) {
		return false
	}
	if selected {
		s.selected[id] = struct{}{}
	} else {
		delete(s.selected, id)
	}
	s.version++
	return true
}

// ClearSelection empties the selection set.
func (s *State) ClearSelection() {
	clear(s.selected)
	s.version++
}

// SetCurrent moves the current session pointer. The id is not checked
// against the list: a session may be current before any list has loaded.
func (s *State) SetCurrent(id string) {
	s.current = id
	s.version++
}

// Current returns the current session id, or "".
func (s *State) Current() string {
	return s.current
}

// Contains reports whether id is in the list.
func (s *State) Contains(id string) bool {
	return slices.ContainsFunc(s.sessions, func(sess Session) bool { return sess.ID == id })
}

// Len returns the number of listed sessions.
func (s *State) Len() int {
	return len(s.sessions)
}

// SelectedIDs returns the selection in list order.
func (s *State) SelectedIDs() []string {
	ids := make([]string, 0, len(s.selected))
	for _, sess := range s.sessions {
		if _, ok := s.selected[sess.ID]; ok {
			ids = append(ids, sess.ID)
		}
	}
	return ids
}

// Snapshot returns a copy of the state that is safe to hand to renderers.
func (s *State) Snapshot() Snapshot {
	selected := make(map[string]bool, len(s.selected))
	for id := range s.selected {
		selected[id] = true
	}
	return Snapshot{
		Sessions: slices.Clone(s.sessions),
		Current:  s.current,
		Selected: selected,
		Version:  s.version,
	}
}

// Snapshot is an immutable copy of State. Version grows with every change
// to the state, so a later snapshot never has a smaller Version.
type Snapshot struct {
	Sessions []Session
	Current  string
	Selected map[string]bool
	Version  uint64
}

// IsCurrent reports whether id is the active session.
func (s Snapshot) IsCurrent(id string) bool {
	return id != "" && id == s.Current
}

// IsSelected reports whether id's checkbox is checked.
func (s Snapshot) IsSelected(id string) bool {
	return s.Selected[id]
}

// Active returns the current session if it is listed.
func (s Snapshot) Active() (Session, bool) {
	for _, sess := range s.Sessions {
		if s.IsCurrent(sess.ID) {
			return sess, true
		}
	}
	return Session{}, false
}
