package getitem

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/grocery/internal/service/models/item"
	"github.com/corray333/backend-labs/grocery/internal/transport/http/dto"
	"github.com/corray333/backend-labs/grocery/internal/transport/http/response"
)

type service interface {
	GetItem(ctx context.Context, id int64) (*item.Item, error)
}

func GetItem(w http.ResponseWriter, r *http.Request, service service) {
	id, err := dto.PathID(r, "itemId")
	if err != nil {
		response.Error(w, r, err)

		return
	}

	found, err := service.GetItem(r.Context(), id)
	if err != nil {
		response.Error(w, r, err)

		return
	}

	response.Success(w, "Grocery item retrieved successfully", found)
}
