package model

import (
	"time"

	"github.com/google/uuid"

	"cutui/backend"
)

// HTTPLogEntry is one logged outbound exchange the backend made to its model
// provider. Entries are purely additive and never correlated back into the
// transcript.
type HTTPLogEntry struct {
	ID        string
	Timestamp time.Time
	Request   backend.HTTPRequestInfo
	Response  *backend.HTTPResponseInfo
	Error     string
}

// AppendHTTPLog records one exchange with the same identity and timestamp
// discipline as the transcript.
func (m *Model) AppendHTTPLog(rec backend.HTTPLogRecord) HTTPLogEntry {
	entry := HTTPLogEntry{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Request:   rec.Request,
		Response:  rec.Response,
		Error:     rec.Error,
	}
	m.HTTPLog = append(m.HTTPLog, entry)
	return entry
}
