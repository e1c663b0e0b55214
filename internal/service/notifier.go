package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/pageza/macrotrack/backend/internal/logging"
)

// MutationKind is what happened to a record
type MutationKind string

const (
	MutationCreated MutationKind = "created"
	MutationUpdated MutationKind = "updated"
	MutationDeleted MutationKind = "deleted"
)

// Subject is the kind of record that changed
type Subject string

const (
	SubjectMeal  Subject = "meal"
	SubjectFood  Subject = "food"
	SubjectGoals Subject = "goals"
)

// Mutation describes one committed change to a user's log or goals.
// Date is empty for goal changes.
type Mutation struct {
	UserID  uuid.UUID
	Date    string
	Kind    MutationKind
	Subject Subject
	ID      uuid.UUID
}

// MutationListener reacts to a committed mutation
type MutationListener func(ctx context.Context, m Mutation) error

// Notifier fans committed mutations out to listeners, synchronously and in
// subscription order. Listener errors are logged and never undo the mutation.
type Notifier struct {
	mu        sync.RWMutex
	listeners []MutationListener
	logger    logging.Logger
}

// NewNotifier creates a notifier reporting listener failures to logger
func NewNotifier(logger logging.Logger) *Notifier {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Notifier{logger: logger}
}

// Subscribe registers l for every later mutation
func (n *Notifier) Subscribe(l MutationListener) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners = append(n.listeners, l)
}

// Notify runs every listener for m
func (n *Notifier) Notify(ctx context.Context, m Mutation) {
	if n == nil {
		return
	}
	n.mu.RLock()
	listeners := make([]MutationListener, len(n.listeners))
	copy(listeners, n.listeners)
	n.mu.RUnlock()

	for _, l := range listeners {
		if err := l(ctx, m); err != nil {
			n.logger.Printf("mutation listener failed for %s %s of user %s: %v", m.Subject, m.Kind, m.UserID, err)
		}
	}
}
