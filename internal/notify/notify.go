// Package notify sends desktop notifications on interval completion.
// Notifications are fire and forget: delivery is never required for
// correctness, and failures only reach the log.
package notify

import (
	"github.com/gen2brain/beeep"

	"github.com/ymachida/pomogoal/internal/logger"
)

// Sink delivers a user-facing notification.
type Sink interface {
	Notify(title, body string)
}

// Desktop notifies through the platform notification service.
type Desktop struct{}

func (Desktop) Notify(title, body string) {
	if err := beeep.Notify(title, body, ""); err != nil {
		logger.Warn("notification failed", "title", title, "err", err)
	}
}

// Silent drops all notifications. Used by tests and headless runs.
type Silent struct{}

func (Silent) Notify(title, body string) {}
