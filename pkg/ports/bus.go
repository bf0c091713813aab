package ports

import "context"

// Handler consumes one published event payload.
type Handler func(ctx context.Context, payload any)

// EventBus is the decoupled notification channel between the engine and its
// display/progress/button collaborators. Topics are the domain.EventType
// strings; payloads are the matching event structs from pkg/domain.
//
// Publish must be synchronous with respect to the caller: the engine relies
// on all mutations of one logical move completing before control returns to
// the UI callback that triggered it.
type EventBus interface {
	Publish(ctx context.Context, topic string, payload any)
	Subscribe(topic string, h Handler) (unsubscribe func())
}
