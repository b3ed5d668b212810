package app

import (
	"context"
	"errors"
	"testing"

	domainTelegram "homework_status_bot/internal/domain/telegram"
	"homework_status_bot/internal/domain/telegram/mocks"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestChatNotifier_SendsToConfiguredChat(t *testing.T) {
	client := mocks.NewClient(t)
	client.On("SendMessage", mock.Anything, int64(777), "hello").Return(nil).Once()

	log, _ := test.NewNullLogger()
	n := NewChatNotifier(client, 777, log)
	require.NoError(t, n.Notify(context.Background(), "hello"))
}

func TestChatNotifier_ReturnsClientError(t *testing.T) {
	sendErr := &domainTelegram.NotifyError{Kind: domainTelegram.NotifyUnauthorized, ChatID: 777, Err: errors.New("Unauthorized")}
	client := mocks.NewClient(t)
	client.On("SendMessage", mock.Anything, int64(777), "hello").Return(sendErr).Once()

	log, _ := test.NewNullLogger()
	err := NewChatNotifier(client, 777, log).Notify(context.Background(), "hello")

	var ne *domainTelegram.NotifyError
	require.ErrorAs(t, err, &ne)
	require.Equal(t, domainTelegram.NotifyUnauthorized, ne.Kind)
}
