package notify

// Notifier pushes short operator-facing messages about reservation outcomes
// and reconciliation results. Implementations decide the channel (log,
// Telegram chat, ...).
type Notifier interface {
	Notify(text string) error
}
