package updateitem

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/grocery/internal/service/models/item"
	"github.com/corray333/backend-labs/grocery/internal/transport/http/dto"
	"github.com/corray333/backend-labs/grocery/internal/transport/http/response"
)

// service is an interface for the service layer.
type service interface {
	UpdateItem(ctx context.Context, cmd item.UpdateItemCommand) (*item.Item, error)
}

// UpdateItem handles the partial update of a grocery item. Only the fields
// present in the body are changed.
func UpdateItem(w http.ResponseWriter, r *http.Request, service service) {
	id, err := dto.PathID(r, "itemId")
	if err != nil {
		response.Error(w, r, err)

		return
	}

	cmd, err := dto.UpdateItem(id, r.Body)
	if err != nil {
		response.Error(w, r, err)

		return
	}

	updated, err := service.UpdateItem(r.Context(), cmd)
	if err != nil {
		response.Error(w, r, err)

		return
	}

	response.Success(w, "Grocery item updated successfully", updated)
}
