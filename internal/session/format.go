package session

import (
	"fmt"
	"strconv"
	"time"
)

// LocalIDPrefix marks sessions that only exist on this client because the
// backend could not create them.
const LocalIDPrefix = "session_local_"

// FormatDate renders t relative to now: "방금 전" under a minute (including
// timestamps in the future), "N분 전" under an hour, "N시간 전" under a day,
// otherwise the calendar date.
func FormatDate(now, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "방금 전"
	case d < time.Hour:
		return fmt.Sprintf("%d분 전", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d시간 전", int(d/time.Hour))
	default:
		return FormatLocalDate(t)
	}
}

// FormatLocalDate renders t the way ko-KR locales print dates: "2024. 1. 5.".
func FormatLocalDate(t time.Time) string {
	t = t.Local()
	return fmt.Sprintf("%d. %d. %d.", t.Year(), int(t.Month()), t.Day())
}

// DisplayTime renders sess.CreatedAt for the session list. Sessions without
// a timestamp read as just created.
func DisplayTime(now time.Time, sess Session) string {
	if sess.CreatedAt.IsZero() {
		return FormatDate(now, now)
	}
	return FormatDate(now, sess.CreatedAt)
}

// NewSessionName names a session created through the backend.
func NewSessionName(now time.Time) string {
	return "새 세션 " + FormatLocalDate(now)
}

// LocalSessionName names a fallback session created when the backend failed.
func LocalSessionName(now time.Time) string {
	return "로컬 세션 " + FormatLocalDate(now)
}

// LocalSessionID returns the fallback id for a session created at now.
func LocalSessionID(now time.Time) string {
	return LocalIDPrefix + strconv.FormatInt(now.UnixMilli(), 10)
}
