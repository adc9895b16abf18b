package telegram

import (
	"time"

	"gopkg.in/telebot.v3"
)

// Notifier pushes reservation and reconciliation messages to a single chat
// using the gopkg.in/telebot.v3 library. Implements notify.Notifier.
type Notifier struct {
	bot    *telebot.Bot
	chatID int64
}

func NewNotifier(token string, chatID int64) (*Notifier, error) {
	bot, err := telebot.NewBot(telebot.Settings{
		Token:  token,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, err
	}
	return &Notifier{bot: bot, chatID: chatID}, nil
}

func (n *Notifier) Notify(text string) error {
	_, err := n.bot.Send(&telebot.User{ID: n.chatID}, text, &telebot.SendOptions{})
	return err
}
