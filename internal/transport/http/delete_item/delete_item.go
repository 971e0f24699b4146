package deleteitem

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/grocery/internal/transport/http/dto"
	"github.com/corray333/backend-labs/grocery/internal/transport/http/response"
)

type service interface {
	DeleteItem(ctx context.Context, id int64) error
}

type deleteItemResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func DeleteItem(w http.ResponseWriter, r *http.Request, service service) {
	id, err := dto.PathID(r, "itemId")
	if err != nil {
		response.Error(w, r, err)

		return
	}

	if err := service.DeleteItem(r.Context(), id); err != nil {
		response.Error(w, r, err)

		return
	}

	response.JSON(w, http.StatusOK, deleteItemResponse{
		Status:  response.StatusSuccess,
		Message: "Grocery item deleted successfully",
	})
}
