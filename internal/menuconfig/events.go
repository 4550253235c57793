package menuconfig

import (
	"context"
	"time"

	"go.uber.org/zap"

	"creme-menu/internal/mqx"
)

// RoutingKey is the routing key of the configuration change events.
const RoutingKey = "menu.config.changed"

// Action names a configuration change.
type Action string

const (
	ActionContainerAdded  Action = "container_added"
	ActionSpecialAdded    Action = "special_added"
	ActionContainerEdited Action = "container_edited"
	ActionDeleted         Action = "deleted"
	ActionReplaced        Action = "replaced"
)

// ChangeEvent is published after each committed change.
type ChangeEvent struct {
	Action   Action    `json:"action"`
	RecordID int       `json:"record_id,omitempty"`
	EntryID  string    `json:"entry_id,omitempty"`
	At       time.Time `json:"at"`
}

// MQNotifier publishes the events on the message bus.
type MQNotifier struct {
	Publisher mqx.Publisher
}

func (n MQNotifier) MenuChanged(ctx context.Context, ev ChangeEvent) {
	if n.Publisher == nil {
		return
	}
	if err := mqx.PublishJSON(ctx, n.Publisher, RoutingKey, ev); err != nil {
		svcLogger.Warn("publish change event", zap.String("action", string(ev.Action)), zap.Error(err))
	}
}

// Notifiers fans an event out.
type Notifiers []Notifier

func (ns Notifiers) MenuChanged(ctx context.Context, ev ChangeEvent) {
	for _, n := range ns {
		n.MenuChanged(ctx, ev)
	}
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, ev ChangeEvent)

func (f NotifierFunc) MenuChanged(ctx context.Context, ev ChangeEvent) { f(ctx, ev) }
