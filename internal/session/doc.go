// Package session holds the client-side chat session model.
//
// # Overview
//
// The backend owns sessions; this package only mirrors what the client has
// fetched. State keeps three things:
//
//   - the session list, ordered most recently created first
//   - the selection set: ids checked for bulk deletion
//   - the current session pointer: id of the active conversation
//
// # Transitions
//
// State has no I/O. Every mutation is a named method:
//
//	Replace       load: swap in a freshly fetched list
//	Prepend       create: put a new session on top
//	RemoveIDs     delete: filter sessions out by id
//	Toggle        checkbox: add or remove one id from the selection
//	ClearSelection
//	SetCurrent    create or explicit load
//
// The selection is always a subset of the ids in the list. Replace and
// RemoveIDs prune it, and Toggle ignores ids that aren't listed.
//
// State is not safe for concurrent use; the controller guards it. Snapshot
// returns a deep copy that renderers may keep.
//
// # Helpers
//
// FormatDate renders relative timestamps ("방금 전", "5분 전", "3시간 전") and
// falls back to a ko-KR calendar date after a day. IsValidID rejects the
// placeholder ids a broken caller tends to produce ("", "undefined", "null").
package session
