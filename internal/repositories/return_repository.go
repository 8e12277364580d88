package repositories

import (
	"context"
	"time"

	"mobileshop-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReturnRepository struct {
	DB *pgxpool.Pool
}

func NewReturnRepository(db *pgxpool.Pool) *ReturnRepository {
	return &ReturnRepository{DB: db}
}

func (r *ReturnRepository) CreateTx(ctx context.Context, tx pgx.Tx, ret *models.ReturnCashOrder) error {
	return tx.QueryRow(ctx,
		`INSERT INTO return_cash_orders(cash_order_id, reason, return_amount)
         VALUES($1, $2, $3)
         RETURNING id, created_at`,
		ret.CashOrderID, ret.Reason, ret.ReturnAmount,
	).Scan(&ret.ID, &ret.CreatedAt)
}

func (r *ReturnRepository) ExistsForOrderTx(ctx context.Context, tx pgx.Tx, orderID int) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM return_cash_orders WHERE cash_order_id=$1)`, orderID,
	).Scan(&exists)
	return exists, err
}

func (r *ReturnRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]*models.ReturnCashOrder, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, cash_order_id, reason, return_amount, created_at
         FROM return_cash_orders
         WHERE created_at >= $1 AND created_at <= $2
         ORDER BY created_at DESC`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var returns []*models.ReturnCashOrder
	for rows.Next() {
		var ret models.ReturnCashOrder
		if err := rows.Scan(&ret.ID, &ret.CashOrderID, &ret.Reason, &ret.ReturnAmount, &ret.CreatedAt); err != nil {
			return nil, err
		}
		returns = append(returns, &ret)
	}
	return returns, rows.Err()
}
