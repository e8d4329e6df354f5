package repository

import (
	"context"
	"fmt"
	"time"

	"clubops/internal/data/entity"
	"clubops/pkg/database"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TransactionRepository is append-only: there is no update or delete.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.FinancialTransaction) error
	SumRevenueSince(ctx context.Context, clubID uuid.UUID, since time.Time) (decimal.Decimal, error)
	ListRecent(ctx context.Context, clubID uuid.UUID, limit int) ([]*entity.TransactionWithCreator, error)
}

type transactionRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewTransactionRepository(db database.DBTX, log *zap.Logger) TransactionRepository {
	return &transactionRepository{
		db:  db,
		log: log.With(zap.String("repository", "financial_transaction")),
	}
}

func (r *transactionRepository) Create(ctx context.Context, tx *entity.FinancialTransaction) error {
	query := `
		INSERT INTO financial_transactions (id, club_id, transaction_type, category, amount,
		                                    payment_method, description, reference, created_by,
		                                    processed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		tx.ID,
		tx.ClubID,
		tx.TransactionType,
		tx.Category,
		tx.Amount,
		tx.PaymentMethod,
		tx.Description,
		tx.Reference,
		tx.CreatedBy,
		tx.ProcessedAt,
		tx.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create financial transaction",
			zap.Error(err),
			zap.String("club_id", tx.ClubID.String()),
			zap.String("category", tx.Category),
			zap.String("amount", tx.Amount.String()),
		)
		return fmt.Errorf("create %s transaction: %w", tx.Category, err)
	}

	return nil
}

func (r *transactionRepository) SumRevenueSince(ctx context.Context, clubID uuid.UUID, since time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM financial_transactions
		WHERE club_id = $1 AND transaction_type = 'REVENUE' AND created_at >= $2
	`

	var total decimal.Decimal
	if err := r.db.QueryRow(ctx, query, clubID, since).Scan(&total); err != nil {
		r.log.Error("Failed to sum revenue",
			zap.Error(err),
			zap.String("club_id", clubID.String()),
			zap.Time("since", since),
		)
		return decimal.Zero, fmt.Errorf("sum revenue for club %s: %w", clubID, err)
	}

	return total, nil
}

// ListRecent returns the newest transactions of any type with their creator's name.
func (r *transactionRepository) ListRecent(ctx context.Context, clubID uuid.UUID, limit int) ([]*entity.TransactionWithCreator, error) {
	query := `
		SELECT t.id, t.club_id, t.transaction_type, t.category, t.amount, t.payment_method,
		       t.description, t.reference, t.created_by, t.processed_at, t.created_at,
		       u.first_name, u.last_name
		FROM financial_transactions t
		LEFT JOIN users u ON u.id = t.created_by
		WHERE t.club_id = $1
		ORDER BY t.created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, clubID, limit)
	if err != nil {
		r.log.Error("Failed to list recent transactions",
			zap.Error(err),
			zap.String("club_id", clubID.String()),
		)
		return nil, fmt.Errorf("list recent transactions for club %s: %w", clubID, err)
	}
	defer rows.Close()

	var txs []*entity.TransactionWithCreator
	for rows.Next() {
		var t entity.TransactionWithCreator
		if err := rows.Scan(
			&t.ID,
			&t.ClubID,
			&t.TransactionType,
			&t.Category,
			&t.Amount,
			&t.PaymentMethod,
			&t.Description,
			&t.Reference,
			&t.CreatedBy,
			&t.ProcessedAt,
			&t.CreatedAt,
			&t.CreatedByFirstName,
			&t.CreatedByLastName,
		); err != nil {
			r.log.Error("Failed to scan transaction row", zap.Error(err))
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		txs = append(txs, &t)
	}

	return txs, rows.Err()
}
