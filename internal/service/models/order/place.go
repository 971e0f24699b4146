package order

import (
	"github.com/corray333/backend-labs/grocery/internal/service/errs"
)

// LineRequest is one requested (item, quantity) pair.
type LineRequest struct {
	ItemID   int64 `json:"itemId"`
	Quantity int64 `json:"quantity"`
}

// PlaceOrderCommand is a user's request to buy a list of items.
type PlaceOrderCommand struct {
	UserID int64
	Lines  []LineRequest
}

// Validate checks the command shape. Stock is checked by the order service.
func (c *PlaceOrderCommand) Validate() error {
	if c.UserID <= 0 {
		return errs.Invalid("userId", "userId is required and must be a positive integer")
	}
	for _, l := range c.Lines {
		if l.ItemID <= 0 {
			return errs.Invalid("itemId", "itemId is required and must be a positive integer")
		}
		if l.Quantity <= 0 {
			return errs.Invalid("quantity", "quantity must be a positive integer")
		}
	}

	return nil
}

// ItemIDs returns the distinct requested item ids in first-seen order.
func (c *PlaceOrderCommand) ItemIDs() []int64 {
	seen := make(map[int64]struct{}, len(c.Lines))
	ids := make([]int64, 0, len(c.Lines))
	for _, l := range c.Lines {
		if _, ok := seen[l.ItemID]; ok {
			continue
		}
		seen[l.ItemID] = struct{}{}
		ids = append(ids, l.ItemID)
	}

	return ids
}
