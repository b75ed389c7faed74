package telegram

import (
	"context"

	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"
)

// TelebotAdapter implements the domain Client interface using the
// gopkg.in/telebot.v3 library. Sends go through a rate limiter so a large
// due batch cannot trip Telegram's flood control.
type TelebotAdapter struct {
	bot     *telebot.Bot
	limiter *rate.Limiter
}

func NewTelebotAdapter(b *telebot.Bot, messagesPerSecond int) *TelebotAdapter {
	if messagesPerSecond <= 0 {
		messagesPerSecond = 1
	}
	return &TelebotAdapter{
		bot:     b,
		limiter: rate.NewLimiter(rate.Limit(messagesPerSecond), messagesPerSecond),
	}
}

// SendMessage sends a text message to the specified recipient, waiting for
// the rate limiter or the context, whichever ends first.
func (tba *TelebotAdapter) SendMessage(ctx context.Context, recipientChatID int64, text string, options *telebot.SendOptions) error {
	if err := tba.limiter.Wait(ctx); err != nil {
		return err
	}
	if options == nil {
		options = &telebot.SendOptions{}
	}

	recipient := &telebot.User{ID: recipientChatID} // owners link a direct user chat
	_, err := tba.bot.Send(recipient, text, options)
	return err
}
