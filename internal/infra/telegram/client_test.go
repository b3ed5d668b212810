package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domainTelegram "homework_status_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

func newTestAdapter(t *testing.T, status int, reply string, got *[]sentMessage) (*TelebotAdapter, *httptest.Server) {
	t.Helper()
	return newTestAdapterWith(t, context.Background(), 100, status, reply, got)
}

func newTestAdapterWith(t *testing.T, lifetime context.Context, ratePerSec, status int, reply string, got *[]sentMessage) (*TelebotAdapter, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/bottok/sendMessage", r.URL.Path)
		var m sentMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&m))
		if got != nil {
			*got = append(*got, m)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)

	log, _ := test.NewNullLogger()
	bot, err := NewBot(lifetime, "tok", srv.URL, time.Second, log)
	require.NoError(t, err)
	return NewTelebotAdapter(bot, ratePerSec), srv
}

func TestTelebotAdapter_SendMessage_OK(t *testing.T) {
	var got []sentMessage
	a, _ := newTestAdapter(t, http.StatusOK, okReply, &got)

	require.NoError(t, a.SendMessage(context.Background(), 42, "hi"))
	require.Equal(t, []sentMessage{{ChatID: "42", Text: "hi"}}, got)
}

func TestTelebotAdapter_SendMessage_Unauthorized(t *testing.T) {
	a, _ := newTestAdapter(t, http.StatusUnauthorized,
		`{"ok":false,"error_code":401,"description":"Unauthorized"}`, nil)

	err := a.SendMessage(context.Background(), 42, "hi")
	var ne *domainTelegram.NotifyError
	require.ErrorAs(t, err, &ne)
	require.Equal(t, domainTelegram.NotifyUnauthorized, ne.Kind)
	require.Equal(t, int64(42), ne.ChatID)
}

func TestTelebotAdapter_SendMessage_ServiceError(t *testing.T) {
	a, _ := newTestAdapter(t, http.StatusBadRequest,
		`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`, nil)

	err := a.SendMessage(context.Background(), 42, "hi")
	var ne *domainTelegram.NotifyError
	require.ErrorAs(t, err, &ne)
	require.Equal(t, domainTelegram.NotifyTransport, ne.Kind)
	require.Contains(t, err.Error(), "chat id 42")
}

func TestTelebotAdapter_SendMessage_ConnectionRefused(t *testing.T) {
	a, srv := newTestAdapter(t, http.StatusOK, `{}`, nil)
	srv.Close()

	err := a.SendMessage(context.Background(), 42, "hi")
	var ne *domainTelegram.NotifyError
	require.ErrorAs(t, err, &ne)
	require.Equal(t, domainTelegram.NotifyTransport, ne.Kind)
}

func TestTelebotAdapter_SendMessage_CanceledWhileWaitingForRate(t *testing.T) {
	a, _ := newTestAdapter(t, http.StatusOK, `{}`, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := a.SendMessage(ctx, 42, "hi")
	var ne *domainTelegram.NotifyError
	require.ErrorAs(t, err, &ne)
	require.ErrorIs(t, err, context.Canceled)
}

const okReply = `{"ok":true,"result":{"message_id":7,"date":1700000000,"chat":{"id":42,"type":"private"},"text":"hi"}}`

func TestNewBot_UnreachableAPIDoesNotFailStartup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	log, _ := test.NewNullLogger()
	bot, err := NewBot(context.Background(), "tok", srv.URL, time.Second, log)
	require.NoError(t, err)

	err = NewTelebotAdapter(bot, 1).SendMessage(context.Background(), 42, "hi")
	var ne *domainTelegram.NotifyError
	require.ErrorAs(t, err, &ne)
	require.Equal(t, domainTelegram.NotifyTransport, ne.Kind)
}

func TestTelebotAdapter_LifetimeCancelAbortsHungSend(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	lifetime, cancel := context.WithCancel(context.Background())
	log, _ := test.NewNullLogger()
	bot, err := NewBot(lifetime, "tok", srv.URL, time.Minute, log)
	require.NoError(t, err)
	a := NewTelebotAdapter(bot, 100)

	go func() {
		<-started
		cancel()
	}()

	start := time.Now()
	err = a.SendMessage(context.Background(), 42, "hi")
	require.ErrorIs(t, err, context.Canceled)
	require.Less(t, time.Since(start), 30*time.Second)
}

func TestTelebotAdapter_RateLimitSpacesSends(t *testing.T) {
	var got []sentMessage
	a, _ := newTestAdapterWith(t, context.Background(), 1, http.StatusOK, okReply, &got)

	require.NoError(t, a.SendMessage(context.Background(), 42, "first"))

	// the burst is spent, the next token is about a second away
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := a.SendMessage(ctx, 42, "second")
	var ne *domainTelegram.NotifyError
	require.ErrorAs(t, err, &ne)
	require.Equal(t, domainTelegram.NotifyTransport, ne.Kind)
	require.Len(t, got, 1)

	start := time.Now()
	require.NoError(t, a.SendMessage(context.Background(), 42, "third"))
	require.GreaterOrEqual(t, time.Since(start), 500*time.Millisecond)
	require.Len(t, got, 2)
}
