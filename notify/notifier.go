package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Discord embed limits. Longer content is cut off with a marker.
const (
	maxDescriptionLength = 4096
	maxFieldValueLength  = 1024
	truncationMarker     = "..."
)

// minDeliveryGap spaces out webhook posts so an error storm does not
// trip Discord's rate limit.
const minDeliveryGap = 100 * time.Millisecond

// Notifier delivers notifications to a Discord webhook. Producers
// enqueue without blocking; a single consumer goroutine posts entries
// in order with a minimum gap between deliveries. Without a webhook
// URL every notification is logged and discarded.
type Notifier struct {
	webhookURL string
	client     *http.Client
	gap        time.Duration

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []*Notification
	closed bool
	done   chan struct{}
}

// NewNotifier creates a notifier. Call Start to begin delivery and
// Close to drain and stop.
func NewNotifier(webhookURL string) *Notifier {
	n := &Notifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
		gap:        minDeliveryGap,
		done:       make(chan struct{}),
	}
	n.cond = sync.NewCond(&n.mu)
	return n
}

// Start launches the consumer goroutine.
func (n *Notifier) Start() {
	go n.run()
}

// Close stops accepting notifications, waits for the queue to drain
// and shuts the consumer down.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	n.cond.Signal()
	n.mu.Unlock()
	<-n.done
}

// Notify enqueues a notification. Never blocks and never fails; a
// notifier without a webhook logs the notification instead.
func (n *Notifier) Notify(notification *Notification) {
	if n.webhookURL == "" {
		n.logOnly(notification)
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		n.logOnly(notification)
		return
	}
	n.queue = append(n.queue, notification)
	n.cond.Signal()
}

// Warning enqueues a warning-level notification.
func (n *Notifier) Warning(title, description string) {
	n.Notify(NewNotification(SeverityWarning, title, description))
}

// Error enqueues an error-level notification.
func (n *Notifier) Error(title, description string) {
	n.Notify(NewNotification(SeverityError, title, description))
}

// Critical enqueues a critical-level notification.
func (n *Notifier) Critical(title, description string) {
	n.Notify(NewNotification(SeverityCritical, title, description))
}

func (n *Notifier) logOnly(notification *Notification) {
	entry := log.WithFields(log.Fields{
		"title":    notification.Title,
		"severity": notification.Severity,
	})
	switch notification.Severity {
	case SeverityWarning:
		entry.Warn(notification.Description)
	default:
		entry.Error(notification.Description)
	}
}

func (n *Notifier) run() {
	defer close(n.done)

	var lastDelivery time.Time
	for {
		n.mu.Lock()
		for len(n.queue) == 0 && !n.closed {
			n.cond.Wait()
		}
		if len(n.queue) == 0 && n.closed {
			n.mu.Unlock()
			return
		}
		notification := n.queue[0]
		n.queue = n.queue[1:]
		n.mu.Unlock()

		if since := time.Since(lastDelivery); since < n.gap {
			time.Sleep(n.gap - since)
		}
		if err := n.deliver(notification); err != nil {
			log.WithFields(log.Fields{
				"title": notification.Title,
				"error": err,
			}).Warn("Failed to deliver error notification")
		}
		lastDelivery = time.Now()
	}
}

// webhookEmbed mirrors the subset of the Discord embed object the
// webhook payload needs.
type webhookEmbed struct {
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	Color       int                 `json:"color,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
	Fields      []webhookEmbedField `json:"fields,omitempty"`
}

type webhookEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type webhookPayload struct {
	Embeds []webhookEmbed `json:"embeds"`
}

func (n *Notifier) deliver(notification *Notification) error {
	embed := webhookEmbed{
		Title:       notification.Severity.Emoji() + " " + notification.Title,
		Description: truncate(notification.Description, maxDescriptionLength),
		Color:       notification.Severity.Color(),
		Timestamp:   notification.Timestamp.Format(time.RFC3339),
	}
	for _, field := range notification.Fields {
		embed.Fields = append(embed.Fields, webhookEmbedField{
			Name:   field.Name,
			Value:  truncate(field.Value, maxFieldValueLength),
			Inline: true,
		})
	}

	body, err := json.Marshal(webhookPayload{Embeds: []webhookEmbed{embed}})
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	resp, err := n.client.Post(n.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// truncate cuts s to at most limit runes, ending with the truncation
// marker when anything was removed.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-len(truncationMarker)]) + truncationMarker
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
