// Package notify broadcasts domain events between service processes
// and down to connected websocket clients.
package notify

import (
	"context"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/uuid"
)

type Action string

const (
	// AlertUpdate fires when the monitor changes a sample's alert
	// severity.
	AlertUpdate Action = "alert-update"
	// FormUpdate fires on form status transitions.
	FormUpdate Action = "form-update"
	// SelectionUpdate fires when the coordinator's bacteria selection
	// changes.
	SelectionUpdate Action = "selection-update"
)

type SendMsg struct {
	Channel    Action    `json:"action"`
	FormUUID   uuid.UUID `json:"form_uuid,omitempty"`
	SampleUUID uuid.UUID `json:"sample_uuid,omitempty"`
	Site       string    `json:"site,omitempty"`
	Data       any       `json:"data"`
	UUID       uuid.UUID `json:"uuid"`
	Timestamp  int64     `json:"timestamp"`
}

type HandleFunc func(ctx context.Context, msg string) error

type MsgCenter interface {
	Registry(ctx context.Context, msgName Action, handleFunc HandleFunc) error
	Broadcast(ctx context.Context, msg *SendMsg) error
	Close(ctx context.Context) error
}
