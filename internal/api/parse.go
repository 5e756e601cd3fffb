package api

import (
	"time"

	"github.com/tidwall/gjson"

	"github.com/eora-ai/eora/internal/errors"
	"github.com/eora-ai/eora/internal/session"
)

// Layouts the backend has been seen to emit. Python's isoformat() omits the
// zone, so those are read as local time.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

func parseTimestamp(v gjson.Result) time.Time {
	switch v.Type {
	case gjson.Number:
		// epoch millis
		return time.UnixMilli(v.Int())
	case gjson.String:
		for _, layout := range timestampLayouts {
			if t, err := time.ParseInLocation(layout, v.Str, time.Local); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

// listItems accepts either a bare JSON array or an object carrying the array
// under key.
func listItems(op errors.Op, data []byte, key string) ([]gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.DecodeFailed(op, errors.E("body is not JSON"))
	}
	root := gjson.ParseBytes(data)
	if root.IsObject() {
		root = root.Get(key)
	}
	if !root.IsArray() {
		return nil, errors.DecodeFailed(op, errors.E("expected a list of "+key))
	}
	return root.Array(), nil
}

// NormalizeSession reads one session record. The id comes from "id", else
// "_id"; an empty id means the record is unusable.
func NormalizeSession(v gjson.Result) session.Session {
	id := v.Get("id").String()
	if id == "" {
		id = v.Get("_id").String()
	}
	return session.Session{
		ID:           id,
		Name:         v.Get("name").String(),
		CreatedAt:    parseTimestamp(v.Get("created_at")),
		MessageCount: int(v.Get("message_count").Int()),
	}
}

func parseSessions(op errors.Op, data []byte) ([]session.Session, error) {
	items, err := listItems(op, data, "sessions")
	if err != nil {
		return nil, err
	}
	out := make([]session.Session, 0, len(items))
	for _, item := range items {
		sess := NormalizeSession(item)
		if sess.ID == "" {
			continue
		}
		out = append(out, sess)
	}
	return out, nil
}

func parseMessages(op errors.Op, data []byte) ([]session.Message, error) {
	items, err := listItems(op, data, "messages")
	if err != nil {
		return nil, err
	}
	out := make([]session.Message, 0, len(items))
	for _, item := range items {
		out = append(out, session.Message{
			Role:      item.Get("role").String(),
			Content:   item.Get("content").String(),
			Timestamp: parseTimestamp(item.Get("timestamp")),
		})
	}
	return out, nil
}

// createdSessionID reads the new id from a create response: "_id" first,
// then "session_id".
func createdSessionID(op errors.Op, data []byte) (string, error) {
	if !gjson.ValidBytes(data) {
		return "", errors.DecodeFailed(op, errors.E("body is not JSON"))
	}
	res := gjson.GetManyBytes(data, "_id", "session_id")
	for _, v := range res {
		if id := v.String(); session.IsValidID(id) {
			return id, nil
		}
	}
	return "", errors.MissingIdentifier(op)
}

func parsePoints(op errors.Op, data []byte) (Points, error) {
	if !gjson.ValidBytes(data) {
		return Points{}, errors.DecodeFailed(op, errors.E("body is not JSON"))
	}
	v := gjson.GetBytes(data, "points")
	return Points{
		Points:  v.Int(),
		Present: v.Type == gjson.Number,
	}, nil
}

func parseChatReply(op errors.Op, data []byte) (string, error) {
	if !gjson.ValidBytes(data) {
		return "", errors.DecodeFailed(op, errors.E("body is not JSON"))
	}
	v := gjson.GetBytes(data, "response")
	if !v.Exists() {
		return "", errors.DecodeFailed(op, errors.E("response field missing"))
	}
	return v.String(), nil
}

// errorMessage pulls a human readable message out of an error body.
func errorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	for _, v := range gjson.GetManyBytes(body, "detail", "message", "error") {
		if v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}
	return ""
}
