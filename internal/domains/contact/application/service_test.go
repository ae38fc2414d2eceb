package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/plant-nursery-api/internal/domains/contact/domain"
	"github.com/Apurer/plant-nursery-api/internal/domains/contact/ports"
	"github.com/Apurer/plant-nursery-api/internal/platform/storage/memory"
)

func TestSubmitListAndMarkRead(t *testing.T) {
	ctx := context.Background()
	backend := memory.New(memory.Snapshot{})
	svc := NewService(backend.Messages(), backend)

	msg, err := svc.Submit(ctx, ports.SubmitInput{Name: "Dev", Email: "dev@example.com", Phone: "(022) 2345-6789", Message: "Do you deliver bonsai?"})
	require.NoError(t, err)
	require.Equal(t, domain.StatusNew, msg.Status)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	read, err := svc.MarkRead(ctx, msg.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusRead, read.Status)

	_, err = svc.MarkRead(ctx, "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSubmit_Validation(t *testing.T) {
	svc := NewService(nil, memory.New(memory.Snapshot{}))

	_, err := svc.Submit(context.Background(), ports.SubmitInput{Name: "Dev", Email: "dev@example.com"})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrMissingFields)

	_, err = svc.Submit(context.Background(), ports.SubmitInput{Name: "Dev", Email: "not-mail", Message: "hi"})
	require.ErrorIs(t, err, domain.ErrInvalidEmail)
}
