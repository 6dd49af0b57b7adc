package bot

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rolepanel/notify"
)

type capturedWebhook struct {
	mu     sync.Mutex
	bodies []string
}

func (c *capturedWebhook) handler(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	c.mu.Lock()
	c.bodies = append(c.bodies, string(body))
	c.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (c *capturedWebhook) all() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.bodies...)
}

func newDisconnectTestBot(webhookURL string) *Bot {
	notifier := notify.NewNotifier(webhookURL)
	notifier.Start()
	return &Bot{
		notifier: notifier,
		stop:     make(chan struct{}),
		fatal:    make(chan struct{}),
	}
}

func fatalFired(b *Bot) bool {
	select {
	case <-b.fatal:
		return true
	default:
		return false
	}
}

func TestHandleDisconnect_NotifiesOperatorAndSignalsFatal(t *testing.T) {
	captured := &capturedWebhook{}
	server := httptest.NewServer(http.HandlerFunc(captured.handler))
	defer server.Close()

	b := newDisconnectTestBot(server.URL)
	b.handleDisconnect(nil, &discordgo.Disconnect{})

	assert.True(t, fatalFired(b))

	b.notifier.Close()
	bodies := captured.all()
	require.Len(t, bodies, 1)
	assert.Contains(t, bodies[0], "Gateway Fatal Error")
	assert.Contains(t, bodies[0], "🚨")
}

func TestHandleDisconnect_RepeatedDisconnectSignalsOnce(t *testing.T) {
	b := newDisconnectTestBot("")
	defer b.notifier.Close()

	b.handleDisconnect(nil, &discordgo.Disconnect{})
	assert.NotPanics(t, func() {
		b.handleDisconnect(nil, &discordgo.Disconnect{})
	})
	assert.True(t, fatalFired(b))
}

func TestHandleDisconnect_SilentDuringShutdown(t *testing.T) {
	captured := &capturedWebhook{}
	server := httptest.NewServer(http.HandlerFunc(captured.handler))
	defer server.Close()

	b := newDisconnectTestBot(server.URL)
	close(b.stop)

	b.handleDisconnect(nil, &discordgo.Disconnect{})

	assert.False(t, fatalFired(b))
	b.notifier.Close()
	assert.Empty(t, captured.all())
}
