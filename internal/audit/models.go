package audit

import (
	"time"

	"github.com/google/uuid"
	"github.com/mssola/useragent"
)

// Action identifies what happened to a field value.
type Action string

const (
	ActionValueSaved   Action = "value_saved"
	ActionValueDeleted Action = "value_deleted"
)

// Device is the parsed client environment attached to an event.
type Device struct {
	Browser string `json:"browser,omitempty"`
	OS      string `json:"os,omitempty"`
}

// Event is emitted from domain logic to capture field-value mutations. Keep it
// transport-agnostic so sinks can fan out. Plaintext values are never
// included; the trail shows who touched which field, not what was written.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Action    Action    `json:"action"`
	GroupSlug string    `json:"group_slug"`
	FieldSlug string    `json:"field_slug"`
	ModelID   int64     `json:"model_id"`
	Actor     string    `json:"actor,omitempty"`
	Device    Device    `json:"device,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ParseDevice extracts browser and OS names from a raw User-Agent header.
func ParseDevice(rawUA string) Device {
	if rawUA == "" {
		return Device{}
	}
	ua := useragent.New(rawUA)
	browser, _ := ua.Browser()
	return Device{Browser: browser, OS: ua.OS()}
}
