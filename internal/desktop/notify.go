// Package desktop implements the operating-system collaborators of the
// monitor: synthetic input, the operator prompt, toasts and alert audio.
package desktop

import (
	"github.com/gen2brain/beeep"
)

// Notifier shows transient desktop toasts.
type Notifier struct{}

// NewNotifier registers appName with the notification backend.
func NewNotifier(appName string) *Notifier {
	if appName != "" {
		beeep.AppName = appName
	}
	return &Notifier{}
}

// Notify shows a toast. It does not wait for the operator.
func (n *Notifier) Notify(title, message string) error {
	return beeep.Notify(title, message, "")
}
