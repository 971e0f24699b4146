package order

import (
	"testing"

	"github.com/corray333/backend-labs/grocery/internal/service/errs"
	"github.com/stretchr/testify/assert"
)

func TestPlaceOrderCommand_ItemIDs(t *testing.T) {
	cmd := PlaceOrderCommand{
		UserID: 1,
		Lines: []LineRequest{
			{ItemID: 7, Quantity: 1},
			{ItemID: 3, Quantity: 2},
			{ItemID: 7, Quantity: 4},
		},
	}

	assert.Equal(t, []int64{7, 3}, cmd.ItemIDs())
	assert.NoError(t, cmd.Validate())
}

func TestPlaceOrderCommand_Validate(t *testing.T) {
	assert.ErrorIs(t, (&PlaceOrderCommand{}).Validate(), errs.ErrValidation)
	assert.NoError(t, (&PlaceOrderCommand{UserID: 1}).Validate())
	assert.ErrorIs(t, (&PlaceOrderCommand{
		UserID: 1,
		Lines:  []LineRequest{{ItemID: 1, Quantity: -2}},
	}).Validate(), errs.ErrValidation)
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("Placed")
	assert.NoError(t, err)
	assert.Equal(t, StatusPlaced, status)

	_, err = ParseStatus("Lost")
	assert.ErrorIs(t, err, errs.ErrValidation)
}
