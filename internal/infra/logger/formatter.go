package logger

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

const defaultTimestampFormat = "2006-01-02 15:04:05"

// LineFormatter writes "timestamp, LEVEL, message[ k=v...], source" lines.
// Source is file:line of the caller, or "-" when caller reporting is off.
type LineFormatter struct {
	TimestampFormat string
}

func (f *LineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	tsFormat := f.TimestampFormat
	if tsFormat == "" {
		tsFormat = defaultTimestampFormat
	}

	b := e.Buffer
	if b == nil {
		b = &bytes.Buffer{}
	}

	b.WriteString(e.Time.Format(tsFormat))
	b.WriteString(", ")
	b.WriteString(strings.ToUpper(e.Level.String()))
	b.WriteString(", ")
	b.WriteString(e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, " %s=%v", k, e.Data[k])
	}

	b.WriteString(", ")
	if e.Caller != nil {
		fmt.Fprintf(b, "%s:%d", filepath.Base(e.Caller.File), e.Caller.Line)
	} else {
		b.WriteString("-")
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}
