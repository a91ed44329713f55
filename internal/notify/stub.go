//go:build !linux

package notify

import "github.com/sirupsen/logrus"

// New returns a no-op notifier; desktop notifications need D-Bus.
func New(_ logrus.FieldLogger) (Notifier, error) {
	return Nop(), nil
}
