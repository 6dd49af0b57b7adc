package notify

import "time"

// Severity classifies how urgent an operator notification is.
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// Color returns the embed accent color for the severity.
func (s Severity) Color() int {
	switch s {
	case SeverityWarning:
		return 0xFFA500
	case SeverityCritical:
		return 0x8B0000
	default:
		return 0xFF0000
	}
}

// Emoji returns the title prefix for the severity.
func (s Severity) Emoji() string {
	switch s {
	case SeverityWarning:
		return "⚠️"
	case SeverityCritical:
		return "🚨"
	default:
		return "❌"
	}
}

// Field is a labeled value attached to a notification.
type Field struct {
	Name  string
	Value string
}

// Notification is one operator-facing error report. Build it with
// NewNotification and the With methods, then hand it to a Notifier.
type Notification struct {
	Title       string
	Description string
	Severity    Severity
	Fields      []Field
	Timestamp   time.Time
}

// NewNotification creates a notification with the given severity.
func NewNotification(severity Severity, title, description string) *Notification {
	return &Notification{
		Title:       title,
		Description: description,
		Severity:    severity,
		Timestamp:   time.Now().UTC(),
	}
}

// WithField appends a labeled value to the notification.
func (n *Notification) WithField(name, value string) *Notification {
	n.Fields = append(n.Fields, Field{Name: name, Value: value})
	return n
}

// WithGuild attaches the guild the error happened in.
func (n *Notification) WithGuild(guildID int64) *Notification {
	return n.WithField("Guild", formatID(guildID))
}

// WithUser attaches the user who triggered the error.
func (n *Notification) WithUser(userID int64) *Notification {
	return n.WithField("User", formatID(userID))
}
