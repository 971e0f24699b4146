package createitem

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/grocery/internal/service/models/item"
	"github.com/corray333/backend-labs/grocery/internal/transport/http/dto"
	"github.com/corray333/backend-labs/grocery/internal/transport/http/response"
)

// service is an interface for the service layer.
type service interface {
	CreateItem(ctx context.Context, cmd item.CreateItemCommand) (*item.Item, error)
}

type createItemResponse struct {
	Message string     `json:"message"`
	Item    *item.Item `json:"item"`
}

// CreateItem handles the add grocery item request.
func CreateItem(w http.ResponseWriter, r *http.Request, service service) {
	cmd, err := dto.CreateItem(r.Body)
	if err != nil {
		response.Error(w, r, err)

		return
	}

	created, err := service.CreateItem(r.Context(), cmd)
	if err != nil {
		response.Error(w, r, err)

		return
	}

	response.JSON(w, http.StatusCreated, createItemResponse{
		Message: "New grocery item added!",
		Item:    created,
	})
}
