package repositories

import (
	"context"

	"mobileshop-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WeekClosureRepository struct {
	DB *pgxpool.Pool
}

func NewWeekClosureRepository(db *pgxpool.Pool) *WeekClosureRepository {
	return &WeekClosureRepository{DB: db}
}

func (r *WeekClosureRepository) CreateTx(ctx context.Context, tx pgx.Tx, w *models.WeekClosure) error {
	return tx.QueryRow(ctx,
		`INSERT INTO week_closures(total_profit, business_profit)
         VALUES($1, $2)
         RETURNING id, created_at`,
		w.TotalProfit, w.BusinessProfit,
	).Scan(&w.ID, &w.CreatedAt)
}

func (r *WeekClosureRepository) List(ctx context.Context) ([]*models.WeekClosure, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, total_profit, business_profit, created_at
         FROM week_closures ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var closures []*models.WeekClosure
	for rows.Next() {
		var w models.WeekClosure
		if err := rows.Scan(&w.ID, &w.TotalProfit, &w.BusinessProfit, &w.CreatedAt); err != nil {
			return nil, err
		}
		closures = append(closures, &w)
	}
	return closures, rows.Err()
}
