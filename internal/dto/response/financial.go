package response

import (
	"strings"
	"time"

	"clubops/internal/data/entity"

	"github.com/shopspring/decimal"
)

type TransactionResponse struct {
	ID              string                 `json:"id"`
	TransactionType entity.TransactionType `json:"transactionType"`
	Category        string                 `json:"category"`
	Amount          decimal.Decimal        `json:"amount"`
	PaymentMethod   entity.PaymentMethod   `json:"paymentMethod"`
	Description     string                 `json:"description"`
	Reference       *string                `json:"reference,omitempty"`
	ProcessedAt     time.Time              `json:"processedAt"`
	CreatedAt       time.Time              `json:"createdAt"`
	CreatedBy       *string                `json:"createdBy,omitempty"`
}

type RevenueSummary struct {
	Daily   decimal.Decimal `json:"daily"`
	Weekly  decimal.Decimal `json:"weekly"`
	Monthly decimal.Decimal `json:"monthly"`
}

type DashboardResponse struct {
	Revenue            RevenueSummary        `json:"revenue"`
	RecentTransactions []TransactionResponse `json:"recentTransactions"`
}

func TransactionToResponse(t *entity.FinancialTransaction) TransactionResponse {
	return TransactionResponse{
		ID:              t.ID.String(),
		TransactionType: t.TransactionType,
		Category:        t.Category,
		Amount:          t.Amount,
		PaymentMethod:   t.PaymentMethod,
		Description:     t.Description,
		Reference:       t.Reference,
		ProcessedAt:     t.ProcessedAt,
		CreatedAt:       t.CreatedAt,
	}
}

// TransactionWithCreatorToResponse fills createdBy with the recorder's full name.
func TransactionWithCreatorToResponse(t *entity.TransactionWithCreator) TransactionResponse {
	resp := TransactionToResponse(&t.FinancialTransaction)

	var parts []string
	if t.CreatedByFirstName != nil {
		parts = append(parts, *t.CreatedByFirstName)
	}
	if t.CreatedByLastName != nil {
		parts = append(parts, *t.CreatedByLastName)
	}
	if len(parts) > 0 {
		name := strings.Join(parts, " ")
		resp.CreatedBy = &name
	}

	return resp
}
