package logger

import "github.com/sirupsen/logrus"

// Notifier is the default notification sink when no Telegram chat is
// configured: messages go to the application log. Implements
// notify.Notifier.
type Notifier struct {
	Log *logrus.Logger
}

func (n *Notifier) Notify(text string) error {
	n.Log.Info(text)
	return nil
}
