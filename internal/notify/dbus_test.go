//go:build linux

package notify

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionNotifier(t *testing.T) Notifier {
	t.Helper()
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		t.Skip("no D-Bus session available")
	}
	n, err := New(nil)
	require.NoError(t, err)
	if _, ok := n.(*dbusNotifier); !ok {
		t.Skip("session bus unreachable")
	}
	return n
}

func TestNew_FallsBackWithoutSessionBus(t *testing.T) {
	t.Setenv("DBUS_SESSION_BUS_ADDRESS", "unix:path=/nonexistent/aurex-test-bus")

	n, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, Nop(), n)
}

func TestDBus_NotifyAndReplace(t *testing.T) {
	n := sessionNotifier(t)

	first, err := n.Notify(Notification{Title: "Track 1", Body: "Artist - Album", Timeout: 2000})
	require.NoError(t, err)
	require.NotZero(t, first)

	second, err := n.Notify(Notification{Title: "Track 2", Body: "Artist - Album", Timeout: 1000, ReplacesID: first})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.NoError(t, n.Close(second))
}
