package request

import "github.com/shopspring/decimal"

// BookVipRoomRequest takes the requested duration in hours; fractions are
// allowed up to one day.
type BookVipRoomRequest struct {
	DancerID     *string         `json:"dancerId,omitempty" validate:"omitempty,uuid"`
	CustomerName *string         `json:"customerName,omitempty" validate:"omitempty,max=100"`
	Duration     decimal.Decimal `json:"duration" validate:"required,gt=0,lte=24"`
}

// CheckoutRequest may be empty; the payment method then defaults to CASH.
type CheckoutRequest struct {
	PaymentMethod string `json:"paymentMethod,omitempty" validate:"omitempty,oneof=CASH CREDIT_CARD DEBIT_CARD"`
}
