package repositories

import (
	"context"
	"time"

	"mobileshop-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TransactionRepository struct {
	DB *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{DB: db}
}

func (r *TransactionRepository) CreateTx(ctx context.Context, tx pgx.Tx, t *models.Transaction) error {
	return tx.QueryRow(ctx,
		`INSERT INTO transactions(cash_order_id, total_profit, seller_profit, owner_profit, business_profit)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, created_at`,
		t.CashOrderID, t.TotalProfit, t.SellerProfit, t.OwnerProfit, t.BusinessProfit,
	).Scan(&t.ID, &t.CreatedAt)
}

// ExistsForOrderTx backs distribution idempotence: a second distribute for
// the same order is a no-op when a row is already present.
func (r *TransactionRepository) ExistsForOrderTx(ctx context.Context, tx pgx.Tx, orderID int) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM transactions WHERE cash_order_id=$1)`, orderID,
	).Scan(&exists)
	return exists, err
}

func (r *TransactionRepository) GetByOrderTx(ctx context.Context, tx pgx.Tx, orderID int) (*models.Transaction, error) {
	var t models.Transaction
	err := tx.QueryRow(ctx,
		`SELECT id, cash_order_id, total_profit, seller_profit, owner_profit, business_profit, created_at
         FROM transactions WHERE cash_order_id=$1 FOR UPDATE`, orderID,
	).Scan(&t.ID, &t.CashOrderID, &t.TotalProfit, &t.SellerProfit, &t.OwnerProfit, &t.BusinessProfit, &t.CreatedAt)
	return &t, err
}

func (r *TransactionRepository) DeleteByOrderTx(ctx context.Context, tx pgx.Tx, orderID int) error {
	_, err := tx.Exec(ctx, `DELETE FROM transactions WHERE cash_order_id=$1`, orderID)
	return err
}

func (r *TransactionRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]*models.Transaction, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, cash_order_id, total_profit, seller_profit, owner_profit, business_profit, created_at
         FROM transactions
         WHERE created_at >= $1 AND created_at <= $2
         ORDER BY created_at DESC`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []*models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.CashOrderID, &t.TotalProfit, &t.SellerProfit,
			&t.OwnerProfit, &t.BusinessProfit, &t.CreatedAt); err != nil {
			return nil, err
		}
		txs = append(txs, &t)
	}
	return txs, rows.Err()
}
