package domain

import (
	"context"
	"time"
)

// EventType identifies the notification topic.
type EventType string

const (
	EventNavigationChanged  EventType = "navigation:changed"
	EventNavigationDenied   EventType = "navigation:denied"
	EventNavigationRequest  EventType = "navigation:request"
	EventConditionEvaluated EventType = "condition:evaluated"
	EventInputChanged       EventType = "input:changed"
)

// Direction of a navigation request.
type Direction string

const (
	DirectionNext Direction = "next"
	DirectionPrev Direction = "prev"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// NavigationEvent reports a completed or denied movement.
type NavigationEvent struct {
	EventBase
	Direction Direction `json:"direction"`
	Target    Level     `json:"target,omitempty"` // level the move resolved at
	NodeID    string    `json:"node_id,omitempty"`
	Reason    string    `json:"reason,omitempty"` // denial reason, empty on success
}

// ConditionEvent reports a re-evaluated visibility condition on one node.
type ConditionEvent struct {
	EventBase
	NodeID   string `json:"node_id"`
	NodeType Level  `json:"node_type"`
	Included bool   `json:"included"`
}

// InputEvent reports a leaf value change.
type InputEvent struct {
	EventBase
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Hooks defines callbacks for engine observability. Any nil hook is skipped.
type Hooks struct {
	OnNavigationChanged  func(context.Context, *NavigationEvent)
	OnNavigationDenied   func(context.Context, *NavigationEvent)
	OnConditionEvaluated func(context.Context, *ConditionEvent)
	OnInputChanged       func(context.Context, *InputEvent)
	OnStatePublished     func(context.Context, *FormState)
}
