package statsd

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listenUDP(t *testing.T) (*net.UDPConn, string) {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn, conn.LocalAddr().String()
}

func readLine(t *testing.T, conn *net.UDPConn) string {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	buf := make([]byte, 1024)
	n, _, err := conn.ReadFromUDP(buf)
	require.NoError(t, err)
	return string(buf[:n])
}

func TestClientDisabled(t *testing.T) {
	client, err := NewClient(Config{Enabled: false, Address: "127.0.0.1:8125"})
	require.NoError(t, err)
	assert.False(t, client.Enabled())

	// Emissions on a disabled client must not panic.
	client.Count("scanner.tick", 1, nil)
	client.Gauge("jobs.overdue", 3, nil)
	client.Timing("scanner.duration", time.Second, nil)
	require.NoError(t, client.Close())
}

func TestClientNilReceiver(t *testing.T) {
	var client *Client
	assert.False(t, client.Enabled())
	client.Count("scanner.tick", 1, nil)
	require.NoError(t, client.Close())
}

func TestClientCountWithPrefix(t *testing.T) {
	server, addr := listenUDP(t)

	client, err := NewClient(Config{Enabled: true, Address: addr, Prefix: "pulsewatch."})
	require.NoError(t, err)
	defer func() { _ = client.Close() }()
	require.True(t, client.Enabled())

	client.Count("scanner.tick", 2, nil)
	assert.Equal(t, "pulsewatch.scanner.tick:2|c", readLine(t, server))
}

func TestClientTagsSorted(t *testing.T) {
	server, addr := listenUDP(t)

	client, err := NewClient(Config{Enabled: true, Address: addr})
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	client.Count("notify.sent", 1, map[string]string{"kind": "failure", "channel": "slack"})
	assert.Equal(t, "notify.sent:1|c|#channel:slack,kind:failure", readLine(t, server))
}

func TestClientTiming(t *testing.T) {
	server, addr := listenUDP(t)

	client, err := NewClient(Config{Enabled: true, Address: addr})
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	client.Timing("scanner.duration", 1500*time.Millisecond, nil)
	assert.Equal(t, "scanner.duration:1500|ms", readLine(t, server))
}

func TestClientCloseIdempotent(t *testing.T) {
	_, addr := listenUDP(t)

	client, err := NewClient(Config{Enabled: true, Address: addr})
	require.NoError(t, err)
	require.NoError(t, client.Close())
	require.NoError(t, client.Close())
	assert.False(t, client.Enabled())

	// Emissions after close are no-ops.
	client.Count("scanner.tick", 1, nil)
}
