package getorder

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/grocery/internal/service/models/order"
	"github.com/corray333/backend-labs/grocery/internal/transport/http/dto"
	"github.com/corray333/backend-labs/grocery/internal/transport/http/response"
)

type service interface {
	GetOrder(ctx context.Context, id int64) (*order.Details, error)
}

func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := dto.PathID(r, "orderId")
	if err != nil {
		response.Error(w, r, err)

		return
	}

	details, err := service.GetOrder(r.Context(), id)
	if err != nil {
		response.Error(w, r, err)

		return
	}

	response.Success(w, "Order retrieved successfully", details)
}
