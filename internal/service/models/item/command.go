package item

import (
	"strings"

	"github.com/corray333/backend-labs/grocery/internal/service/errs"
	"github.com/shopspring/decimal"
)

// Reasons reported for invalid item fields.
const (
	ReasonName       = "Name is required and must be a string"
	ReasonPrice      = "Price is required and must be a positive number"
	ReasonQuantity   = "Quantity is required and must be a non-negative integer"
	ReasonPriceRange = "Price must have at most 2 decimal places and not exceed 99999999.99"
)

// MaxPrice is the largest price the catalog stores.
var MaxPrice = decimal.New(9999999999, -2)

// CheckPrice validates a price against the stored precision.
func CheckPrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return errs.Invalid("price", ReasonPrice)
	}
	if !price.Equal(price.Truncate(2)) || price.GreaterThan(MaxPrice) {
		return errs.Invalid("price", ReasonPriceRange)
	}

	return nil
}

// CreateItemCommand carries the fields of a new catalog item.
type CreateItemCommand struct {
	Name     string
	Price    decimal.Decimal
	Quantity int64
}

// Validate checks the command and normalizes the name.
func (c *CreateItemCommand) Validate() error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return errs.Invalid("name", ReasonName)
	}
	if err := CheckPrice(c.Price); err != nil {
		return err
	}
	if c.Quantity < 0 {
		return errs.Invalid("quantity", ReasonQuantity)
	}

	return nil
}

// UpdateItemCommand is a partial update of an item.
// A nil field keeps the stored value.
type UpdateItemCommand struct {
	ID       int64
	Name     *string
	Price    *decimal.Decimal
	Quantity *int64
}

// Validate checks every supplied field with the same rules as on create.
func (c *UpdateItemCommand) Validate() error {
	if c.ID <= 0 {
		return errs.Invalid("itemId", "Item id must be a positive integer")
	}
	if c.Name != nil {
		name := strings.TrimSpace(*c.Name)
		if name == "" {
			return errs.Invalid("name", ReasonName)
		}
		c.Name = &name
	}
	if c.Price != nil {
		if err := CheckPrice(*c.Price); err != nil {
			return err
		}
	}
	if c.Quantity != nil && *c.Quantity < 0 {
		return errs.Invalid("quantity", ReasonQuantity)
	}

	return nil
}

// IsEmpty reports whether the command changes nothing.
func (c *UpdateItemCommand) IsEmpty() bool {
	return c.Name == nil && c.Price == nil && c.Quantity == nil
}

// Apply returns a copy of it with the supplied fields replaced.
func (c *UpdateItemCommand) Apply(it Item) Item {
	if c.Name != nil {
		it.Name = *c.Name
	}
	if c.Price != nil {
		it.Price = *c.Price
	}
	if c.Quantity != nil {
		it.Quantity = *c.Quantity
	}

	return it
}
