package placeorder

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/grocery/internal/service/models/order"
	"github.com/corray333/backend-labs/grocery/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/grocery/internal/transport/http/dto"
	"github.com/corray333/backend-labs/grocery/internal/transport/http/response"
)

// service is an interface for the service layer.
type service interface {
	PlaceOrder(ctx context.Context, cmd order.PlaceOrderCommand) (*order.Details, error)
}

type placeOrderResponse struct {
	Message    string                `json:"message"`
	Order      order.Order           `json:"order"`
	OrderItems []orderitem.OrderItem `json:"orderItems"`
}

// PlaceOrder handles the order placement request.
func PlaceOrder(w http.ResponseWriter, r *http.Request, service service) {
	cmd, err := dto.PlaceOrder(r.Body)
	if err != nil {
		response.Error(w, r, err)

		return
	}

	details, err := service.PlaceOrder(r.Context(), cmd)
	if err != nil {
		response.Error(w, r, err)

		return
	}

	response.JSON(w, http.StatusCreated, placeOrderResponse{
		Message:    "Order placed successfully",
		Order:      details.Order,
		OrderItems: details.OrderItems,
	})
}
