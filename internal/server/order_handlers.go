package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ordermapper "github.com/Apurer/plant-nursery-api/internal/domains/orders/adapters/http/mapper"
	orderdomain "github.com/Apurer/plant-nursery-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/plant-nursery-api/internal/domains/orders/ports"
	apierrors "github.com/Apurer/plant-nursery-api/internal/shared/errors"
)

// Post /api/orders
func (a *api) placeOrder(c *gin.Context) {
	var payload ordermapper.Checkout
	if err := c.ShouldBindJSON(&payload); err != nil {
		a.responder.Respond(c, apierrors.ErrValidation.WithDetail("Invalid order payload: "+err.Error()))
		return
	}
	input := ordermapper.ToPlaceOrderInput(payload, currentUserID(c))
	if key := strings.TrimSpace(c.GetHeader(idempotencyKeyHeader)); key != "" {
		input.OrderID = orderIDForKey(buyerScope(input.UserID, input.Customer.Email), key)
	}
	order, err := a.placement().PlaceOrder(c.Request.Context(), input)
	if err != nil {
		a.responder.RespondError(c, err)
		return
	}
	a.responder.OK(c, http.StatusOK, "Order placed successfully", ordermapper.FromDomainOrder(order))
}

const idempotencyKeyHeader = "Idempotency-Key"

var idempotencyNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("plant-nursery-api/orders"))

// orderIDForKey maps a buyer's idempotency key onto a stable order id, so a
// retried checkout replays the stored order instead of selling twice.
func orderIDForKey(scope, key string) string {
	return uuid.NewSHA1(idempotencyNamespace, []byte(scope+"\x00"+key)).String()
}

// buyerScope keys signed-in buyers by user id and guests by email, so two
// buyers sending the same key never share an order id.
func buyerScope(userID, email string) string {
	if userID != "" {
		return "user:" + userID
	}
	return "guest:" + strings.ToLower(strings.TrimSpace(email))
}

func (a *api) placement() orderports.PlacementOrchestrator {
	if a.services.Placement != nil {
		return a.services.Placement
	}
	return a.services.Orders
}

// Get /api/user/orders
func (a *api) userOrders(c *gin.Context) {
	orders, err := a.services.Orders.ListUserOrders(c.Request.Context(), currentUserID(c))
	a.respondOrders(c, orders, err)
}

// Get /api/admin/orders
func (a *api) adminOrders(c *gin.Context) {
	orders, err := a.services.Orders.ListOrders(c.Request.Context())
	a.respondOrders(c, orders, err)
}

func (a *api) respondOrders(c *gin.Context, orders []*orderdomain.Order, err error) {
	if err != nil {
		a.responder.RespondError(c, err)
		return
	}
	a.responder.List(c, "Orders retrieved successfully", ordermapper.FromDomainOrders(orders), len(orders), nil)
}

// Put /api/admin/orders/:id/status
func (a *api) updateOrderStatus(c *gin.Context) {
	var payload ordermapper.StatusUpdate
	if err := c.ShouldBindJSON(&payload); err != nil {
		a.responder.Respond(c, apierrors.ErrValidation.WithDetail(capitalize(orderdomain.ErrInvalidStatus.Error())))
		return
	}
	order, err := a.services.Orders.UpdateStatus(c.Request.Context(), orderports.UpdateStatusInput{
		OrderID:     c.Param("id"),
		Status:      payload.Status,
		Notes:       payload.Notes,
		ActorUserID: currentUserID(c),
	})
	if err != nil {
		a.responder.RespondError(c, err)
		return
	}
	a.responder.OK(c, http.StatusOK, "Order status updated successfully", ordermapper.FromDomainOrder(order))
}
