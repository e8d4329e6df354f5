package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionRevenue TransactionType = "REVENUE"
	TransactionExpense TransactionType = "EXPENSE"
)

const (
	CategoryVipRoom = "VIP Room"
	CategoryBarFee  = "Bar Fee"
)

// FinancialTransaction rows are append-only.
type FinancialTransaction struct {
	BaseSimple
	ClubID          uuid.UUID       `db:"club_id"`
	TransactionType TransactionType `db:"transaction_type"`
	Category        string          `db:"category"`
	Amount          decimal.Decimal `db:"amount"`
	PaymentMethod   PaymentMethod   `db:"payment_method"`
	Description     string          `db:"description"`
	Reference       *string         `db:"reference"`
	CreatedBy       *uuid.UUID      `db:"created_by"`
	ProcessedAt     time.Time       `db:"processed_at"`
}

// TransactionWithCreator is a transaction joined with who recorded it.
type TransactionWithCreator struct {
	FinancialTransaction
	CreatedByFirstName *string
	CreatedByLastName  *string
}
