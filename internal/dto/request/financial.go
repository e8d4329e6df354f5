package request

import "github.com/shopspring/decimal"

// BarFeeRequest amounts are stored as NUMERIC(10,2).
type BarFeeRequest struct {
	DancerID      string          `json:"dancerId" validate:"required,uuid"`
	Amount        decimal.Decimal `json:"amount" validate:"required,gt=0,lte=99999999.99,cents"`
	PaymentMethod string          `json:"paymentMethod" validate:"required,oneof=CASH CREDIT_CARD DEBIT_CARD"`
	Notes         *string         `json:"notes,omitempty" validate:"omitempty,max=500"`
}
