// internal/app/notifier.go
package app

import (
	"context"

	domainTelegram "homework_status_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
)

// ChatNotifier delivers every message to the single chat configured at startup.
type ChatNotifier struct {
	telegramClient domainTelegram.Client
	chatID         int64
	logger         logrus.FieldLogger
}

func NewChatNotifier(tc domainTelegram.Client, chatID int64, logger logrus.FieldLogger) *ChatNotifier {
	return &ChatNotifier{
		telegramClient: tc,
		chatID:         chatID,
		logger:         logger,
	}
}

// Notify sends exactly one message and does not retry.
func (n *ChatNotifier) Notify(ctx context.Context, message string) error {
	n.logger.WithField("chat_id", n.chatID).Info("Sending message")
	if err := n.telegramClient.SendMessage(ctx, n.chatID, message); err != nil {
		return err
	}
	n.logger.WithField("chat_id", n.chatID).Debug("Message sent")
	return nil
}
