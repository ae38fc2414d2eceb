package workflows

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/mocks"

	orderdomain "github.com/Apurer/plant-nursery-api/internal/domains/orders/domain"
	"github.com/Apurer/plant-nursery-api/internal/domains/orders/ports"
	orderworkflows "github.com/Apurer/plant-nursery-api/internal/platform/temporal/workflows/orders"
)

func TestTemporalPlacementFixesOrderIDBeforeStarting(t *testing.T) {
	temporalClient := &mocks.Client{}
	run := &mocks.WorkflowRun{}
	temporalClient.On("ExecuteWorkflow", mock.Anything,
		mock.MatchedBy(func(o client.StartWorkflowOptions) bool {
			return o.ID == "order-placement-fixed-id" && o.TaskQueue == orderworkflows.PlacementTaskQueue &&
				o.WorkflowIDReusePolicy == enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE &&
				!o.WorkflowExecutionErrorWhenAlreadyStarted
		}),
		orderworkflows.PlacementWorkflowName,
		mock.MatchedBy(func(in orderworkflows.PlacementWorkflowInput) bool {
			return in.Command.OrderID == "fixed-id" && in.TraceID != ""
		}),
	).Return(run, nil).Once()
	run.On("Get", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		order := args.Get(1).(*orderdomain.Order)
		order.ID = "fixed-id"
		order.Status = orderdomain.StatusPending
	}).Return(nil).Once()

	placement := NewTemporalPlacement(temporalClient)
	placement.newID = func() string { return "fixed-id" }

	order, err := placement.PlaceOrder(context.Background(), ports.PlaceOrderInput{})
	require.NoError(t, err)
	require.Equal(t, "fixed-id", order.ID)
	temporalClient.AssertExpectations(t)
	run.AssertExpectations(t)
}

type recordingService struct {
	ports.Service
	got ports.PlaceOrderInput
}

func (s *recordingService) PlaceOrder(_ context.Context, input ports.PlaceOrderInput) (*orderdomain.Order, error) {
	s.got = input
	return &orderdomain.Order{ID: "inline"}, nil
}

func TestInlinePlacementDelegates(t *testing.T) {
	svc := &recordingService{}
	order, err := NewInlinePlacement(svc).PlaceOrder(context.Background(), ports.PlaceOrderInput{UserID: "u-1"})
	require.NoError(t, err)
	require.Equal(t, "inline", order.ID)
	require.Equal(t, "u-1", svc.got.UserID)

	_, err = (*InlinePlacement)(nil).PlaceOrder(context.Background(), ports.PlaceOrderInput{})
	require.Error(t, err)
}
