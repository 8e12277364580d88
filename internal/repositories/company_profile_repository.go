package repositories

import (
	"context"

	"mobileshop-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CompanyProfileRepository manages the singleton balances row (id=1),
// seeded by migration.
type CompanyProfileRepository struct {
	DB *pgxpool.Pool
}

func NewCompanyProfileRepository(db *pgxpool.Pool) *CompanyProfileRepository {
	return &CompanyProfileRepository{DB: db}
}

func (r *CompanyProfileRepository) Get(ctx context.Context) (*models.CompanyProfile, error) {
	var c models.CompanyProfile
	err := r.DB.QueryRow(ctx,
		`SELECT owner_balance, business_balance, updated_at FROM company_profile WHERE id=1`,
	).Scan(&c.OwnerBalance, &c.BusinessBalance, &c.UpdatedAt)
	return &c, err
}

func (r *CompanyProfileRepository) GetForUpdateTx(ctx context.Context, tx pgx.Tx) (*models.CompanyProfile, error) {
	var c models.CompanyProfile
	err := tx.QueryRow(ctx,
		`SELECT owner_balance, business_balance, updated_at FROM company_profile WHERE id=1 FOR UPDATE`,
	).Scan(&c.OwnerBalance, &c.BusinessBalance, &c.UpdatedAt)
	return &c, err
}

func (r *CompanyProfileRepository) AddBalancesTx(ctx context.Context, tx pgx.Tx, ownerDelta, businessDelta int64) error {
	_, err := tx.Exec(ctx,
		`UPDATE company_profile
         SET owner_balance = owner_balance + $1,
             business_balance = business_balance + $2,
             updated_at = NOW()
         WHERE id=1`,
		ownerDelta, businessDelta)
	return err
}

func (r *CompanyProfileRepository) ZeroBusinessTx(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx,
		`UPDATE company_profile SET business_balance = 0, updated_at = NOW() WHERE id=1`)
	return err
}
