package pubsub

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// ContinuousListener keeps one subscription alive across Update calls and
// delivers its events as tea.Msg values.
type ContinuousListener[T any] struct {
	ctx    context.Context
	ch     <-chan Event[T]
	latest bool
}

// NewContinuousListener delivers every event from sub until ctx is
// cancelled.
func NewContinuousListener[T any](ctx context.Context, sub Subscriber[T]) *ContinuousListener[T] {
	return &ContinuousListener[T]{ctx: ctx, ch: sub.Subscribe(ctx)}
}

// NewLatestListener delivers only the newest of any events that queued up
// while the model was busy. Suited to snapshots, where each event
// supersedes the ones before it.
func NewLatestListener[T any](ctx context.Context, sub Subscriber[T]) *ContinuousListener[T] {
	l := NewContinuousListener(ctx, sub)
	l.latest = true
	return l
}

// Listen returns a tea.Cmd that waits for the next event. It yields nil
// once ctx is cancelled or the subscription closes. Call it again from
// Update after handling each event.
func (l *ContinuousListener[T]) Listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-l.ctx.Done():
			return nil
		case event, ok := <-l.ch:
			if !ok {
				return nil
			}
			if l.latest {
				event = l.drain(event)
			}
			return event
		}
	}
}

// drain returns the last event already queued behind event.
func (l *ContinuousListener[T]) drain(event Event[T]) Event[T] {
	for {
		select {
		case next, ok := <-l.ch:
			if !ok {
				return event
			}
			event = next
		default:
			return event
		}
	}
}
