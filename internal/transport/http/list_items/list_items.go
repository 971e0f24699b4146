package listitems

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/grocery/internal/service/models/item"
	"github.com/corray333/backend-labs/grocery/internal/transport/http/dto"
	"github.com/corray333/backend-labs/grocery/internal/transport/http/response"
)

type service interface {
	ListItems(ctx context.Context, query item.QueryItemsModel) (*item.Page, error)
	ListAvailableItems(ctx context.Context, query item.QueryItemsModel) (*item.Page, error)
}

type listFunc func(ctx context.Context, query item.QueryItemsModel) (*item.Page, error)

// ListItems handles the admin catalog listing.
func ListItems(w http.ResponseWriter, r *http.Request, service service) {
	list(w, r, service.ListItems, "Grocery items retrieved successfully")
}

// ListAvailableItems handles the in-stock listing.
func ListAvailableItems(w http.ResponseWriter, r *http.Request, service service) {
	list(w, r, service.ListAvailableItems, "Available grocery items retrieved successfully")
}

func list(w http.ResponseWriter, r *http.Request, fn listFunc, message string) {
	var query dto.ListItemsQuery
	if err := dto.DecodeQuery(r, &query); err != nil {
		response.Error(w, r, err)

		return
	}

	page, err := fn(r.Context(), query.ToModel())
	if err != nil {
		response.Error(w, r, err)

		return
	}

	response.Success(w, message, page)
}
