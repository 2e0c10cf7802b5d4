// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package notify holds the console's two transient-notification stores: the
// bounded ring of push events behind the notification bell, and the toast
// queue overlaid on every view.
//
// Both stores are explicit state containers with a defined mutation API.
// The push channel writes into them from its read goroutine; the TUI reads
// them from the bubbletea loop. All methods are safe for concurrent use, and
// subscribers receive change signals over a buffered channel with
// drop-on-full dispatch, so a stalled UI never blocks the push reader.
package notify

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

// MaxEvents bounds the notification ring. Older events fall off the end.
const MaxEvents = 50

// Event is one push notification retained for the notification panel.
type Event struct {
	// Type is the raw push event type, e.g. "approval_added".
	Type string

	// File and Path identify the artifact the event concerns, when any.
	File string
	Path string

	// Action is an optional human-oriented label carried by the event.
	Action string

	// Message is the display string shown in the panel and in toasts.
	Message string

	// Timestamp is when the event was received.
	Timestamp time.Time
}

// Change is the signal delivered to subscribers. It carries no payload:
// subscribers re-read store state, which coalesces bursts naturally.
type Change struct{}

// NotificationStore is the bounded, newest-first ring of push events plus
// the unread counter and the push-channel connection flag.
type NotificationStore struct {
	mutex       sync.RWMutex
	events      []Event
	unread      int
	connected   bool
	subscribers []chan Change
}

// NewNotificationStore returns an empty store.
func NewNotificationStore() *NotificationStore {
	return &NotificationStore{}
}

// AddEvent prepends an event, stamps its timestamp if unset, trims the ring
// to MaxEvents, and bumps the unread counter.
func (store *NotificationStore) AddEvent(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	store.mutex.Lock()
	store.events = append([]Event{event}, store.events...)
	if len(store.events) > MaxEvents {
		store.events = store.events[:MaxEvents]
	}
	store.unread++
	subscribers := store.subscribers
	store.mutex.Unlock()

	dispatch(subscribers)
}

// Events returns a copy of the ring, newest first.
func (store *NotificationStore) Events() []Event {
	store.mutex.RLock()
	defer store.mutex.RUnlock()
	events := make([]Event, len(store.events))
	copy(events, store.events)
	return events
}

// UnreadCount returns the number of events added since the last ClearUnread.
func (store *NotificationStore) UnreadCount() int {
	store.mutex.RLock()
	defer store.mutex.RUnlock()
	return store.unread
}

// ClearUnread zeroes the unread counter without touching the events. Called
// when the operator opens the notification panel.
func (store *NotificationStore) ClearUnread() {
	store.mutex.Lock()
	store.unread = 0
	subscribers := store.subscribers
	store.mutex.Unlock()

	dispatch(subscribers)
}

// ClearAll drops every event and zeroes the unread counter.
func (store *NotificationStore) ClearAll() {
	store.mutex.Lock()
	store.events = nil
	store.unread = 0
	subscribers := store.subscribers
	store.mutex.Unlock()

	dispatch(subscribers)
}

// RemoveEvent deletes the event at the given position in the newest-first
// ordering. Out-of-range indices are ignored.
func (store *NotificationStore) RemoveEvent(index int) {
	store.mutex.Lock()
	if index < 0 || index >= len(store.events) {
		store.mutex.Unlock()
		return
	}
	store.events = append(store.events[:index], store.events[index+1:]...)
	subscribers := store.subscribers
	store.mutex.Unlock()

	dispatch(subscribers)
}

// SetConnected records the push channel's liveness for the sidebar
// indicator.
func (store *NotificationStore) SetConnected(connected bool) {
	store.mutex.Lock()
	changed := store.connected != connected
	store.connected = connected
	subscribers := store.subscribers
	store.mutex.Unlock()

	if changed {
		dispatch(subscribers)
	}
}

// Connected reports whether the push channel is currently open.
func (store *NotificationStore) Connected() bool {
	store.mutex.RLock()
	defer store.mutex.RUnlock()
	return store.connected
}

// Subscribe returns a channel that receives a Change whenever store state
// mutates. The channel is buffered; a full buffer drops the signal, which is
// fine because subscribers re-read full state on every signal.
func (store *NotificationStore) Subscribe() <-chan Change {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	channel := make(chan Change, 64)
	store.subscribers = append(store.subscribers, channel)
	return channel
}

func dispatch(subscribers []chan Change) {
	for _, subscriber := range subscribers {
		select {
		case subscriber <- Change{}:
		default:
			// Subscriber buffer full, drop. State is re-read on the
			// next signal anyway.
		}
	}
}

// MaxToasts bounds the toast queue. Inserting past the bound evicts the
// oldest toast immediately.
const MaxToasts = 5

// ToastLifetime is how long a toast stays visible unless dismissed first.
const ToastLifetime = 4 * time.Second

// ToastKind classifies a toast for styling.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
	ToastInfo    ToastKind = "info"
)

// Toast is one transient message in the overlay stack.
type Toast struct {
	// ID is locally unique, so the expiry timer for an evicted toast can
	// never dismiss its successor.
	ID string

	Kind    ToastKind
	Message string
}

// ToastStore is the bounded queue of transient messages. Expiry is owned by
// the UI: every Add is paired with a ToastLifetime timer that calls Remove with
// the returned toast's ID.
type ToastStore struct {
	mutex  sync.RWMutex
	toasts []Toast
}

// NewToastStore returns an empty store.
func NewToastStore() *ToastStore {
	return &ToastStore{}
}

// Add appends a toast, evicting the oldest when the queue is full, and
// returns the stored toast so the caller can schedule its expiry.
func (store *ToastStore) Add(kind ToastKind, message string) Toast {
	toast := Toast{
		ID:      fmt.Sprintf("%d-%06d", time.Now().UnixNano(), rand.IntN(1000000)),
		Kind:    kind,
		Message: message,
	}

	store.mutex.Lock()
	store.toasts = append(store.toasts, toast)
	if len(store.toasts) > MaxToasts {
		store.toasts = store.toasts[len(store.toasts)-MaxToasts:]
	}
	store.mutex.Unlock()

	return toast
}

// Remove deletes the toast with the given ID. Removing an already-gone
// toast is a no-op, so manual dismissal and the expiry timer cannot
// double-remove.
func (store *ToastStore) Remove(id string) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	for index, toast := range store.toasts {
		if toast.ID == id {
			store.toasts = append(store.toasts[:index], store.toasts[index+1:]...)
			return
		}
	}
}

// Toasts returns a copy of the queue, oldest first.
func (store *ToastStore) Toasts() []Toast {
	store.mutex.RLock()
	defer store.mutex.RUnlock()
	toasts := make([]Toast, len(store.toasts))
	copy(toasts, store.toasts)
	return toasts
}
