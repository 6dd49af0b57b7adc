package notify

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingServer captures webhook posts in arrival order.
type recordingServer struct {
	mu       sync.Mutex
	payloads []webhookPayload
	arrivals []time.Time
	server   *httptest.Server
}

func newRecordingServer(t *testing.T) *recordingServer {
	rs := &recordingServer{}
	rs.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var payload webhookPayload
		require.NoError(t, json.Unmarshal(body, &payload))

		rs.mu.Lock()
		rs.payloads = append(rs.payloads, payload)
		rs.arrivals = append(rs.arrivals, time.Now())
		rs.mu.Unlock()

		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(rs.server.Close)
	return rs
}

func TestNotifier_DeliversInOrder(t *testing.T) {
	rs := newRecordingServer(t)

	n := NewNotifier(rs.server.URL)
	n.gap = time.Millisecond
	n.Start()

	n.Warning("first", "a")
	n.Error("second", "b")
	n.Critical("third", "c")
	n.Close()

	require.Len(t, rs.payloads, 3)
	assert.Equal(t, "⚠️ first", rs.payloads[0].Embeds[0].Title)
	assert.Equal(t, "❌ second", rs.payloads[1].Embeds[0].Title)
	assert.Equal(t, "🚨 third", rs.payloads[2].Embeds[0].Title)
	assert.Equal(t, 0xFFA500, rs.payloads[0].Embeds[0].Color)
	assert.Equal(t, 0xFF0000, rs.payloads[1].Embeds[0].Color)
	assert.Equal(t, 0x8B0000, rs.payloads[2].Embeds[0].Color)
}

func TestNotifier_SpacesOutDeliveries(t *testing.T) {
	rs := newRecordingServer(t)

	n := NewNotifier(rs.server.URL)
	n.gap = 50 * time.Millisecond
	n.Start()

	n.Error("one", "x")
	n.Error("two", "y")
	n.Close()

	require.Len(t, rs.arrivals, 2)
	assert.GreaterOrEqual(t, rs.arrivals[1].Sub(rs.arrivals[0]), 40*time.Millisecond)
}

func TestNotifier_TruncatesLongContent(t *testing.T) {
	rs := newRecordingServer(t)

	n := NewNotifier(rs.server.URL)
	n.gap = time.Millisecond
	n.Start()

	longDesc := strings.Repeat("d", maxDescriptionLength+500)
	longField := strings.Repeat("f", maxFieldValueLength+500)
	n.Notify(NewNotification(SeverityError, "big", longDesc).WithField("Detail", longField))
	n.Close()

	require.Len(t, rs.payloads, 1)
	embed := rs.payloads[0].Embeds[0]
	assert.Len(t, []rune(embed.Description), maxDescriptionLength)
	assert.True(t, strings.HasSuffix(embed.Description, truncationMarker))
	require.Len(t, embed.Fields, 1)
	assert.Len(t, []rune(embed.Fields[0].Value), maxFieldValueLength)
	assert.True(t, strings.HasSuffix(embed.Fields[0].Value, truncationMarker))
}

func TestNotifier_WithoutWebhookLogsAndDiscards(t *testing.T) {
	n := NewNotifier("")
	n.Start()

	assert.NotPanics(t, func() {
		n.Error("no webhook", "still fine")
		n.Close()
	})
}

func TestNotifier_NotifyAfterCloseDoesNotBlock(t *testing.T) {
	rs := newRecordingServer(t)

	n := NewNotifier(rs.server.URL)
	n.gap = time.Millisecond
	n.Start()
	n.Close()

	done := make(chan struct{})
	go func() {
		n.Error("late", "after close")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked after Close")
	}
}

func TestTruncate_ShortContentUntouched(t *testing.T) {
	assert.Equal(t, "hello", truncate("hello", 10))
	assert.Equal(t, "hello", truncate("hello", 5))
}
