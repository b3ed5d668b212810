// internal/app/status_parser.go
package app

import (
	"fmt"

	"homework_status_bot/internal/domain/homework"

	"github.com/sirupsen/logrus"
)

const homeworkResultTemplate = "Your homework \"%s\" was reviewed!\n\n%s"

// StatusParser turns a homework record into the message shown to the student.
type StatusParser struct {
	logger logrus.FieldLogger
}

func NewStatusParser(logger logrus.FieldLogger) *StatusParser {
	return &StatusParser{logger: logger}
}

// Parse fails only when the name or status is missing. Unknown statuses
// still produce a message so they reach the chat.
func (p *StatusParser) Parse(rec homework.Record) (string, error) {
	p.logger.Debug("Parsing homework")

	if rec.Name == "" {
		return "", &homework.ParseError{Attr: "homework_name"}
	}
	if rec.Status == "" {
		return "", &homework.ParseError{Attr: "status"}
	}

	verdict, ok := homework.Verdict(rec.Status)
	if !ok {
		p.logger.WithField("homework_name", rec.Name).Warnf("Homework status %s is not found", rec.Status)
		verdict = fmt.Sprintf("unknown status: %s", rec.Status)
	}

	return fmt.Sprintf(homeworkResultTemplate, rec.Name, verdict), nil
}
