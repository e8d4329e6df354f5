package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type feeForm struct {
	DancerID string          `json:"dancerId" validate:"required,uuid"`
	Amount   decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Method   string          `json:"paymentMethod" validate:"required,oneof=CASH CREDIT_CARD DEBIT_CARD"`
	Items    []item          `json:"entries" validate:"dive"`
}

type item struct {
	Position int `json:"position" validate:"min=1"`
}

func TestValidateStruct(t *testing.T) {
	valid := feeForm{
		DancerID: "0b8f6f0c-3c1e-4a53-8f59-8a7f0c1b2d3e",
		Amount:   decimal.NewFromInt(25),
		Method:   "CASH",
	}
	assert.Nil(t, ValidateStruct(valid))

	errs := ValidateStruct(feeForm{
		DancerID: "nope",
		Amount:   decimal.NewFromInt(-5),
		Method:   "CHEQUE",
		Items:    []item{{Position: 0}},
	})

	assert.Equal(t, "Must be a valid UUID", errs["dancerId"])
	assert.Equal(t, "Must be greater than 0", errs["amount"])
	assert.Equal(t, "Must be one of: CASH, CREDIT_CARD, DEBIT_CARD", errs["paymentMethod"])
	assert.Equal(t, "Must be at least 1", errs["entries[0].position"])
}

func TestValidateCents(t *testing.T) {
	type fee struct {
		Amount decimal.Decimal `json:"amount" validate:"required,gt=0,lte=99999999.99,cents"`
	}

	assert.Nil(t, ValidateStruct(fee{Amount: decimal.RequireFromString("25.10")}))
	assert.Nil(t, ValidateStruct(fee{Amount: decimal.RequireFromString("99999999.99")}))
	assert.Equal(t, "Must have at most 2 decimal places",
		ValidateStruct(fee{Amount: decimal.RequireFromString("0.125")})["amount"])
	assert.Equal(t, "Must be at most 99999999.99",
		ValidateStruct(fee{Amount: decimal.RequireFromString("100000000")})["amount"])
}

func TestFormatValidationErrors(t *testing.T) {
	got := FormatValidationErrors(map[string]string{
		"email":    "Invalid email format",
		"password": "This field is required",
	})
	assert.Equal(t, "email: Invalid email format; password: This field is required", got)
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 3, ParseInt("3", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 50, ParseInt("abc", 50))
	assert.Equal(t, 50, ParseInt("-2", 50))
}

func TestPageWindow(t *testing.T) {
	assert.Equal(t, Window{Page: 1, Limit: 50, Offset: 0}, PageWindow(0, 0, 50, 100))
	assert.Equal(t, Window{Page: 3, Limit: 20, Offset: 40}, PageWindow(3, 20, 50, 100))
	assert.Equal(t, Window{Page: 2, Limit: 100, Offset: 100}, PageWindow(2, 500, 50, 100))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 50))
	assert.Equal(t, 1, TotalPages(50, 50))
	assert.Equal(t, 2, TotalPages(51, 50))
	assert.Equal(t, 0, TotalPages(10, 0))
}
