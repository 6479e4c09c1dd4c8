package entity

import (
	"encoding/json"
	"time"
)

// RawData is one fetched page or API response, written by the crawling
// subsystem and consumed read-only here. Data and MetaData are untrusted,
// partially structured JSON: any key may be absent.
type RawData struct {
	ID         int64
	URL        string
	Domain     string
	HTTPStatus int
	Data       json.RawMessage
	MetaData   json.RawMessage
	JobID      string
	CreatedAt  time.Time
}
