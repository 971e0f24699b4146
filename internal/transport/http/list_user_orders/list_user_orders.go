package listuserorders

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/grocery/internal/service/models/order"
	"github.com/corray333/backend-labs/grocery/internal/transport/http/dto"
	"github.com/corray333/backend-labs/grocery/internal/transport/http/response"
)

type service interface {
	ListUserOrders(ctx context.Context, userID int64, page, pageSize int) (*order.Page, error)
}

// ListUserOrders handles the order history of one user.
func ListUserOrders(w http.ResponseWriter, r *http.Request, service service) {
	userID, err := dto.PathID(r, "userId")
	if err != nil {
		response.Error(w, r, err)

		return
	}

	var query dto.ListOrdersQuery
	if err := dto.DecodeQuery(r, &query); err != nil {
		response.Error(w, r, err)

		return
	}

	page, err := service.ListUserOrders(r.Context(), userID, query.Page, query.PageSize)
	if err != nil {
		response.Error(w, r, err)

		return
	}

	response.Success(w, "Orders retrieved successfully", page)
}
