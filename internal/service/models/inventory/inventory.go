package inventory

import (
	"github.com/corray333/backend-labs/grocery/internal/service/errs"
)

// Operation is an inventory adjustment kind.
type Operation string

const (
	OperationIncrease Operation = "increase"
	OperationDecrease Operation = "decrease"
	OperationSetZero  Operation = "setZero"
)

func (o Operation) String() string {
	return string(o)
}

// ParseOperation parses an operation name.
func ParseOperation(s string) (Operation, error) {
	switch o := Operation(s); o {
	case OperationIncrease, OperationDecrease, OperationSetZero:
		return o, nil
	default:
		return "", errs.ErrUnknownOperation
	}
}

// AdjustInventoryCommand changes the quantity-on-hand of one item.
// Quantity is ignored for setZero.
type AdjustInventoryCommand struct {
	ItemID    int64
	Operation Operation
	Quantity  int64
}

// Validate checks the command before any storage access.
func (c *AdjustInventoryCommand) Validate() error {
	if _, err := ParseOperation(c.Operation.String()); err != nil {
		return err
	}
	if c.ItemID <= 0 {
		return errs.Invalid("itemId", "Item id must be a positive integer")
	}
	if c.Operation != OperationSetZero && c.Quantity <= 0 {
		return errs.Invalid("quantity", "Quantity must be a positive integer")
	}

	return nil
}
