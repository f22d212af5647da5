package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTradeRequestValidate(t *testing.T) {
	tests := []struct {
		name   string
		req    TradeRequest
		fields []string
	}{
		{"valid", TradeRequest{Name: "AAA", Quantity: 1}, nil},
		{"zero quantity", TradeRequest{Name: "AAA", Quantity: 0}, []string{"quantity"}},
		{"negative quantity", TradeRequest{Name: "AAA", Quantity: -2}, []string{"quantity"}},
		{"empty name", TradeRequest{Name: "", Quantity: 1}, []string{"name"}},
		{"name too long", TradeRequest{Name: "ABCDEFGHIJK", Quantity: 1}, []string{"name"}},
		{"both invalid", TradeRequest{Name: "", Quantity: 0}, []string{"name", "quantity"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.req.Validate()
			if tt.fields == nil {
				assert.Nil(t, errs)
				return
			}
			assert.Len(t, errs, len(tt.fields))
			for _, field := range tt.fields {
				assert.Contains(t, errs, field)
			}
		})
	}
}

func TestValidationErrorsError(t *testing.T) {
	errs := FieldError("quantity", "must be a positive integer")
	assert.EqualError(t, errs, "quantity: must be a positive integer")
}
