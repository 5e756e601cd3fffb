// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"github.com/gen2brain/beeep"

	"github.com/eora-ai/eora/internal/logger"
)

// AppName is the title used for every notification.
const AppName = "EORA"

// notifyFunc matches beeep.Notify so tests can swap it out.
type notifyFunc func(title, message string, icon any) error

var notify notifyFunc = beeep.Notify

// SetNotifier replaces the function used to deliver notifications.
func SetNotifier(fn func(title, message string, icon any) error) {
	notify = fn
}

// ResetNotifier restores the beeep backend.
func ResetNotifier() {
	notify = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
// On macOS, it uses terminal-notifier or AppleScript.
// On Linux, it uses D-Bus or notify-send.
// On Windows, it uses the Windows Runtime COM API.
func Send(title, message string) error {
	log := logger.WithComponent("notification")
	log.Debug("sending notification", "title", title)
	// Empty icon: beeep picks the platform default
	if err := notify(title, message, ""); err != nil {
		log.Warn("failed to send notification", "error", err)
		return err
	}
	return nil
}

// ReplyReady announces that the assistant answered in sessionName.
func ReplyReady(sessionName string) error {
	if sessionName == "" {
		sessionName = "EORA"
	}
	return Send(AppName, sessionName+": 응답이 도착했습니다")
}
