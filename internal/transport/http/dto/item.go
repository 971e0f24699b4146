package dto

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/corray333/backend-labs/grocery/internal/service/errs"
	"github.com/corray333/backend-labs/grocery/internal/service/models/item"
	"github.com/corray333/backend-labs/grocery/pkg/optional"
	"github.com/shopspring/decimal"
)

// itemRequest keeps each field raw so that type errors can be reported per field.
type itemRequest struct {
	Name     optional.Optional[json.RawMessage] `json:"name"`
	Price    optional.Optional[json.RawMessage] `json:"price"`
	Quantity optional.Optional[json.RawMessage] `json:"quantity"`
}

// ListItemsQuery is the query string of catalog listings.
type ListItemsQuery struct {
	Page      int    `schema:"page"`
	PageSize  int    `schema:"pageSize"`
	SortBy    string `schema:"sortBy"`
	SortOrder string `schema:"sortOrder"`
}

// ToModel converts the query to the service model.
func (q ListItemsQuery) ToModel() item.QueryItemsModel {
	return item.QueryItemsModel{
		Page:      q.Page,
		PageSize:  q.PageSize,
		SortBy:    item.SortField(q.SortBy),
		SortOrder: item.SortOrder(q.SortOrder),
	}
}

// CreateItem decodes a create request. All fields are required.
func CreateItem(body io.Reader) (item.CreateItemCommand, error) {
	var req itemRequest
	if err := DecodeJSON(body, &req); err != nil {
		return item.CreateItemCommand{}, err
	}

	name, err := parseName(req.Name)
	if err != nil {
		return item.CreateItemCommand{}, err
	}
	price, err := parsePrice(req.Price)
	if err != nil {
		return item.CreateItemCommand{}, err
	}
	quantity, err := parseQuantity(req.Quantity)
	if err != nil {
		return item.CreateItemCommand{}, err
	}

	return item.CreateItemCommand{Name: name, Price: price, Quantity: quantity}, nil
}

// UpdateItem decodes a partial update. Absent fields stay nil, null is rejected.
func UpdateItem(id int64, body io.Reader) (item.UpdateItemCommand, error) {
	var req itemRequest
	if err := DecodeJSON(body, &req); err != nil {
		return item.UpdateItemCommand{}, err
	}

	cmd := item.UpdateItemCommand{ID: id}
	if req.Name.Set {
		name, err := parseName(req.Name)
		if err != nil {
			return item.UpdateItemCommand{}, err
		}
		cmd.Name = &name
	}
	if req.Price.Set {
		price, err := parsePrice(req.Price)
		if err != nil {
			return item.UpdateItemCommand{}, err
		}
		cmd.Price = &price
	}
	if req.Quantity.Set {
		quantity, err := parseQuantity(req.Quantity)
		if err != nil {
			return item.UpdateItemCommand{}, err
		}
		cmd.Quantity = &quantity
	}

	return cmd, nil
}

func parseName(raw optional.Optional[json.RawMessage]) (string, error) {
	var name string
	if raw.Ptr() == nil || json.Unmarshal(raw.Value, &name) != nil || strings.TrimSpace(name) == "" {
		return "", errs.Invalid("name", item.ReasonName)
	}

	return strings.TrimSpace(name), nil
}

func parsePrice(raw optional.Optional[json.RawMessage]) (decimal.Decimal, error) {
	n, ok := number(raw)
	if !ok {
		return decimal.Decimal{}, errs.Invalid("price", item.ReasonPrice)
	}

	price, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Decimal{}, errs.Invalid("price", item.ReasonPrice)
	}
	if err := item.CheckPrice(price); err != nil {
		return decimal.Decimal{}, err
	}

	return price, nil
}

func parseQuantity(raw optional.Optional[json.RawMessage]) (int64, error) {
	n, ok := number(raw)
	if !ok {
		return 0, errs.Invalid("quantity", item.ReasonQuantity)
	}

	quantity, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		// 5.0 is still an integer.
		d, derr := decimal.NewFromString(n.String())
		if derr != nil || !d.IsInteger() {
			return 0, errs.Invalid("quantity", item.ReasonQuantity)
		}
		quantity = d.IntPart()
	}
	if quantity < 0 {
		return 0, errs.Invalid("quantity", item.ReasonQuantity)
	}

	return quantity, nil
}

// number accepts a JSON number or a string holding one.
func number(raw optional.Optional[json.RawMessage]) (json.Number, bool) {
	if raw.Ptr() == nil {
		return "", false
	}

	var n json.Number
	if err := json.Unmarshal(raw.Value, &n); err != nil || n == "" {
		return "", false
	}

	return n, true
}
