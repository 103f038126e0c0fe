package chat

// Chat is a Telegram chat registered for alerts.
type Chat struct {
	ID      int64
	Title   string
	Enabled bool
}
