package item

import (
	"math"
	"testing"

	"github.com/corray333/backend-labs/grocery/internal/service/errs"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryItemsModel_Normalize(t *testing.T) {
	tests := []struct {
		name    string
		in      QueryItemsModel
		want    QueryItemsModel
		wantErr string
	}{
		{
			name: "defaults",
			in:   QueryItemsModel{},
			want: QueryItemsModel{Page: 1, PageSize: 10, SortBy: SortByCreatedAt, SortOrder: SortDesc},
		},
		{
			name: "case-insensitive order",
			in:   QueryItemsModel{Page: 2, PageSize: 5, SortBy: SortByPrice, SortOrder: "asc"},
			want: QueryItemsModel{Page: 2, PageSize: 5, SortBy: SortByPrice, SortOrder: SortAsc},
		},
		{
			name: "largest addressable page",
			in:   QueryItemsModel{Page: math.MaxInt/10 + 1, PageSize: 10},
			want: QueryItemsModel{Page: math.MaxInt/10 + 1, PageSize: 10, SortBy: SortByCreatedAt, SortOrder: SortDesc},
		},
		{
			name: "largest page size",
			in:   QueryItemsModel{PageSize: MaxPageSize},
			want: QueryItemsModel{Page: 1, PageSize: MaxPageSize, SortBy: SortByCreatedAt, SortOrder: SortDesc},
		},
		{name: "negative page", in: QueryItemsModel{Page: -1}, wantErr: "page"},
		{name: "page offset overflows", in: QueryItemsModel{Page: math.MaxInt/10 + 2, PageSize: 10}, wantErr: "page"},
		{name: "max page", in: QueryItemsModel{Page: math.MaxInt, PageSize: MaxPageSize}, wantErr: "page"},
		{name: "negative page size", in: QueryItemsModel{PageSize: -5}, wantErr: "pageSize"},
		{name: "page size too large", in: QueryItemsModel{PageSize: MaxPageSize + 1}, wantErr: "pageSize"},
		{name: "unknown sort field", in: QueryItemsModel{SortBy: "weight"}, wantErr: "sortBy"},
		{name: "unknown sort order", in: QueryItemsModel{SortOrder: "up"}, wantErr: "sortOrder"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.in
			err := q.Normalize()
			if tt.wantErr != "" {
				var validation *errs.ValidationError
				require.ErrorAs(t, err, &validation)
				assert.Equal(t, tt.wantErr, validation.Field)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, q)
		})
	}
}

func TestQueryItemsModel_LimitOffset(t *testing.T) {
	q := QueryItemsModel{Page: 3, PageSize: 20}

	assert.Equal(t, 20, q.Limit())
	assert.Equal(t, 40, q.Offset())
}

func TestUpdateItemCommand(t *testing.T) {
	name := "  Pear "
	quantity := int64(0)
	cmd := UpdateItemCommand{ID: 1, Name: &name, Quantity: &quantity}

	require.NoError(t, cmd.Validate())
	assert.Equal(t, "Pear", *cmd.Name)
	assert.False(t, cmd.IsEmpty())

	applied := cmd.Apply(Item{ID: 1, Name: "Apple", Price: decimal.NewFromInt(2), Quantity: 9})
	assert.Equal(t, "Pear", applied.Name)
	assert.Zero(t, applied.Quantity)
	assert.True(t, decimal.NewFromInt(2).Equal(applied.Price))

	tooPrecise := decimal.RequireFromString("0.001")
	assert.ErrorIs(t, (&UpdateItemCommand{ID: 1, Price: &tooPrecise}).Validate(), errs.ErrValidation)

	blank := ""
	assert.ErrorIs(t, (&UpdateItemCommand{ID: 1, Name: &blank}).Validate(), errs.ErrValidation)
	assert.ErrorIs(t, (&UpdateItemCommand{}).Validate(), errs.ErrValidation)
	assert.True(t, (&UpdateItemCommand{ID: 1}).IsEmpty())
}

func TestCheckPrice(t *testing.T) {
	tests := []struct {
		price  string
		reason string
	}{
		{price: "0.01"},
		{price: "1.50"},
		{price: "1.500"},
		{price: "99999999.99"},
		{price: "0", reason: ReasonPrice},
		{price: "-3", reason: ReasonPrice},
		{price: "0.001", reason: ReasonPriceRange},
		{price: "2.345", reason: ReasonPriceRange},
		{price: "100000000", reason: ReasonPriceRange},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			err := CheckPrice(decimal.RequireFromString(tt.price))
			if tt.reason == "" {
				assert.NoError(t, err)
				return
			}

			var validation *errs.ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, "price", validation.Field)
			assert.Equal(t, tt.reason, validation.Reason)
		})
	}
}
