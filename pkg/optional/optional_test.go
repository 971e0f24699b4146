package optional

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patch struct {
	Name  Optional[string] `json:"name"`
	Price Optional[int]    `json:"price"`
}

func TestOptional_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		body      string
		wantName  Optional[string]
		wantPrice Optional[int]
	}{
		{
			name:      "absent fields",
			body:      `{}`,
			wantName:  Optional[string]{},
			wantPrice: Optional[int]{},
		},
		{
			name:      "explicit null",
			body:      `{"name": null}`,
			wantName:  Optional[string]{Set: true, Null: true},
			wantPrice: Optional[int]{},
		},
		{
			name:      "values",
			body:      `{"name": "Milk", "price": 0}`,
			wantName:  Of("Milk"),
			wantPrice: Of(0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var p patch
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))
			assert.Equal(t, tt.wantName, p.Name)
			assert.Equal(t, tt.wantPrice, p.Price)
		})
	}
}

func TestOptional_UnmarshalJSON_TypeMismatch(t *testing.T) {
	t.Parallel()

	var p patch
	err := json.Unmarshal([]byte(`{"price": "ten"}`), &p)
	require.Error(t, err)
}

func TestOptional_Ptr(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Optional[string]{}.Ptr())
	assert.Nil(t, Optional[string]{Set: true, Null: true}.Ptr())

	got := Of("Bread").Ptr()
	require.NotNil(t, got)
	assert.Equal(t, "Bread", *got)
}

func TestOptional_MarshalJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(patch{Name: Of("Eggs")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Eggs","price":null}`, string(data))
}
