package logger

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	fieldType      = "type"
	fieldSession   = "session_id"
	fieldTimestamp = "timestamp_micros"
)

// LogEntry is a single recorded event.
type LogEntry = structpb.Struct

// LogRecorder is a callback that stores events in an external datastore.
type LogRecorder func(le *LogEntry) error

// Logger captures interpreter events.
type Logger struct {
	Record LogRecorder
}

// NewJsonLinesLogRecorder creates a Logger that exports logs in newline
// delimited JSON object format.
func NewJsonLinesLogRecorder(w io.Writer) *Logger {
	return &Logger{
		Record: func(le *LogEntry) error {
			entry, err := protojson.Marshal(le)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

// Nop creates a Logger that discards everything.
func Nop() *Logger {
	return &Logger{
		Record: func(*LogEntry) error { return nil },
	}
}

func (l *Logger) recordEvent(sessionID string, event Event) error {
	fields := event.fields()
	fields[fieldType] = event.Type()
	fields[fieldSession] = sessionID
	fields[fieldTimestamp] = time.Now().UnixNano() / int64(time.Microsecond)

	le, err := structpb.NewStruct(fields)
	if err != nil {
		return err
	}

	return l.Record(le)
}

// NewSession creates a logger with attached session ID.
func (l *Logger) NewSession() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: uuid.NewString()}
}

// Session creates a logger that continues an existing session.
func (l *Logger) Session(sessionID string) *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: sessionID}
}

// SessionLogger logs messages with a shared session ID.
type SessionLogger struct {
	*Logger
	sessionID string
}

// SessionID identifies the session in recorded entries.
func (l *SessionLogger) SessionID() string {
	return l.sessionID
}

func (l *SessionLogger) Record(event Event) error {
	return l.recordEvent(l.sessionID, event)
}

// EntryType returns the event type of a recorded entry.
func EntryType(le *LogEntry) string {
	return stringField(le, fieldType)
}

// EntrySession returns the session ID of a recorded entry.
func EntrySession(le *LogEntry) string {
	return stringField(le, fieldSession)
}

func stringField(le *LogEntry, key string) string {
	return le.GetFields()[key].GetStringValue()
}

func numberField(le *LogEntry, key string) int {
	return int(le.GetFields()[key].GetNumberValue())
}

func listField(le *LogEntry, key string) []string {
	var out []string
	for _, v := range le.GetFields()[key].GetListValue().GetValues() {
		out = append(out, v.GetStringValue())
	}
	return out
}

func toList(argv []string) []interface{} {
	out := make([]interface{}, len(argv))
	for i, arg := range argv {
		out[i] = arg
	}
	return out
}
