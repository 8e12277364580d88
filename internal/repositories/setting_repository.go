package repositories

import (
	"context"

	"mobileshop-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SettingRepository manages the singleton revenue policy row (id=1).
type SettingRepository struct {
	DB *pgxpool.Pool
}

func NewSettingRepository(db *pgxpool.Pool) *SettingRepository {
	return &SettingRepository{DB: db}
}

func (r *SettingRepository) Get(ctx context.Context) (*models.Setting, error) {
	var s models.Setting
	err := r.DB.QueryRow(ctx,
		`SELECT owner_share, expense_share, updated_at FROM settings WHERE id=1`,
	).Scan(&s.OwnerShare, &s.ExpenseShare, &s.UpdatedAt)
	return &s, err
}

func (r *SettingRepository) GetTx(ctx context.Context, tx pgx.Tx) (*models.Setting, error) {
	var s models.Setting
	err := tx.QueryRow(ctx,
		`SELECT owner_share, expense_share, updated_at FROM settings WHERE id=1`,
	).Scan(&s.OwnerShare, &s.ExpenseShare, &s.UpdatedAt)
	return &s, err
}

func (r *SettingRepository) Update(ctx context.Context, ownerShare, expenseShare int) (*models.Setting, error) {
	var s models.Setting
	err := r.DB.QueryRow(ctx,
		`UPDATE settings SET owner_share=$1, expense_share=$2, updated_at = NOW()
         WHERE id=1
         RETURNING owner_share, expense_share, updated_at`,
		ownerShare, expenseShare,
	).Scan(&s.OwnerShare, &s.ExpenseShare, &s.UpdatedAt)
	return &s, err
}
