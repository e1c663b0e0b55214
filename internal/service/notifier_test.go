package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/pageza/macrotrack/backend/internal/logging"
	"github.com/pageza/macrotrack/backend/internal/service"
)

func TestNotifierRunsListenersInOrder(t *testing.T) {
	var buf bytes.Buffer
	notifier := service.NewNotifier(logging.NewWithWriter(&buf, "notifier"))

	var order []string
	notifier.Subscribe(func(context.Context, service.Mutation) error {
		order = append(order, "first")
		return errors.New("boom")
	})
	notifier.Subscribe(func(context.Context, service.Mutation) error {
		order = append(order, "second")
		return nil
	})

	notifier.Notify(context.Background(), service.Mutation{
		UserID:  uuid.New(),
		Date:    "2024-03-01",
		Kind:    service.MutationCreated,
		Subject: service.SubjectFood,
	})

	assert.Equal(t, []string{"first", "second"}, order)
	assert.Contains(t, buf.String(), "[notifier]")
	assert.Contains(t, buf.String(), "boom")
}

func TestNilNotifier(t *testing.T) {
	var notifier *service.Notifier
	assert.NotPanics(t, func() {
		notifier.Notify(context.Background(), service.Mutation{})
	})
}
