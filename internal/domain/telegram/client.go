package telegram

import "context"

//go:generate mockery --name=Client --output=mocks --outpkg=mocks --with-expecter=false

// Client defines an interface for sending messages via a Telegram bot.
// This keeps the application logic away from the specific bot library.
type Client interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}
