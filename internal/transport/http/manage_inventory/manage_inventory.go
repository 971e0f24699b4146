package manageinventory

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/grocery/internal/service/models/inventory"
	"github.com/corray333/backend-labs/grocery/internal/service/models/item"
	"github.com/corray333/backend-labs/grocery/internal/transport/http/dto"
	"github.com/corray333/backend-labs/grocery/internal/transport/http/response"
)

// service is an interface for the service layer.
type service interface {
	ManageInventory(ctx context.Context, cmd inventory.AdjustInventoryCommand) (*item.Item, error)
}

// ManageInventory handles increase, decrease and setZero stock adjustments.
func ManageInventory(w http.ResponseWriter, r *http.Request, service service) {
	cmd, err := dto.ManageInventory(r.Body)
	if err != nil {
		response.Error(w, r, err)

		return
	}

	updated, err := service.ManageInventory(r.Context(), cmd)
	if err != nil {
		response.Error(w, r, err)

		return
	}

	response.Success(w, "Inventory managed successfully", updated)
}
