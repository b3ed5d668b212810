package telegram

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// NewBot creates a send-only bot. No request is made here: a rejected token
// surfaces as NotifyUnauthorized on the first send, inside the poll loop.
// Every request the bot makes is bound to ctx and aborted when it ends.
// An empty apiURL keeps the telebot default endpoint.
func NewBot(ctx context.Context, token, apiURL string, timeout time.Duration, logger logrus.FieldLogger) (*telebot.Bot, error) {
	pref := telebot.Settings{
		URL:   apiURL,
		Token: token,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: &ctxTransport{ctx: ctx, base: http.DefaultTransport},
		},
		Offline: true,
		OnError: func(err error, c telebot.Context) {
			logger.WithError(err).Error("telebot error")
		},
	}
	return telebot.NewBot(pref)
}

// ctxTransport cancels requests built by telebot, which takes no per-call
// context, when the lifetime ctx ends. The request's own context (carrying
// the client timeout) stays in effect.
type ctxTransport struct {
	ctx  context.Context
	base http.RoundTripper
}

func (t *ctxTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx, cancel := context.WithCancel(req.Context())
	stop := context.AfterFunc(t.ctx, cancel)
	release := func() {
		stop()
		cancel()
	}

	resp, err := t.base.RoundTrip(req.WithContext(ctx))
	if err != nil {
		release()
		return nil, err
	}
	resp.Body = &releaseOnClose{ReadCloser: resp.Body, release: release}
	return resp, nil
}

// releaseOnClose keeps the merged context alive until the body is consumed.
type releaseOnClose struct {
	io.ReadCloser
	release func()
}

func (b *releaseOnClose) Close() error {
	err := b.ReadCloser.Close()
	b.release()
	return err
}
