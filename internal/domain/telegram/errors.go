package telegram

import "fmt"

// NotifyErrorKind separates rejected credentials from everything else.
type NotifyErrorKind string

const (
	NotifyUnauthorized NotifyErrorKind = "UNAUTHORIZED" // bot token rejected, not expected to recover
	NotifyTransport    NotifyErrorKind = "TRANSPORT"    // network or service failure, possibly transient
)

// NotifyError is returned by Client implementations when a message was not delivered.
type NotifyError struct {
	Kind   NotifyErrorKind
	ChatID int64
	Err    error
}

func (e *NotifyError) Error() string {
	return fmt.Sprintf("error while sending message via telegram to chat id %d: %v", e.ChatID, e.Err)
}

func (e *NotifyError) Unwrap() error {
	return e.Err
}
