package entities

import (
	"encoding/json"
	"time"
)

type WebhookLog struct {
	ID         int64           `json:"id"`
	Endpoint   string          `json:"endpoint"`
	Payload    json.RawMessage `json:"payload"`
	StatusCode int             `json:"status_code"`
	CreatedAt  time.Time       `json:"created_at"`
}
