// internal/infra/telegram/client.go
package telegram

import (
	"context"
	"errors"
	"net/http"

	domainTelegram "homework_status_bot/internal/domain/telegram"

	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"
)

// TelebotAdapter implements the Client interface using the gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot     *telebot.Bot
	limiter *rate.Limiter
}

// NewTelebotAdapter paces outbound sends to ratePerSec messages per second.
func NewTelebotAdapter(b *telebot.Bot, ratePerSec int) *TelebotAdapter {
	if ratePerSec <= 0 {
		ratePerSec = 1
	}
	return &TelebotAdapter{
		bot:     b,
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), ratePerSec),
	}
}

// SendMessage sends a text message to the specified chat.
// Failures are returned as *domainTelegram.NotifyError.
func (tba *TelebotAdapter) SendMessage(ctx context.Context, chatID int64, text string) error {
	if err := tba.limiter.Wait(ctx); err != nil {
		return &domainTelegram.NotifyError{Kind: domainTelegram.NotifyTransport, ChatID: chatID, Err: err}
	}

	_, err := tba.bot.Send(telebot.ChatID(chatID), text)
	if err != nil {
		return &domainTelegram.NotifyError{Kind: classify(err), ChatID: chatID, Err: err}
	}
	return nil
}

func classify(err error) domainTelegram.NotifyErrorKind {
	if errors.Is(err, telebot.ErrUnauthorized) {
		return domainTelegram.NotifyUnauthorized
	}
	var tgErr *telebot.Error
	if errors.As(err, &tgErr) && tgErr.Code == http.StatusUnauthorized {
		return domainTelegram.NotifyUnauthorized
	}
	return domainTelegram.NotifyTransport
}
