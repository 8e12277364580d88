package repositories

import (
	"context"

	"mobileshop-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SellerProfileRepository struct {
	DB *pgxpool.Pool
}

func NewSellerProfileRepository(db *pgxpool.Pool) *SellerProfileRepository {
	return &SellerProfileRepository{DB: db}
}

func (r *SellerProfileRepository) Create(ctx context.Context, s *models.SellerProfile) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO seller_profiles(username, seller_share, business_share)
         VALUES($1, $2, $3)
         RETURNING id, profit, created_at, updated_at`,
		s.Username, s.SellerShare, s.BusinessShare,
	).Scan(&s.ID, &s.Profit, &s.CreatedAt, &s.UpdatedAt)
}

func (r *SellerProfileRepository) Get(ctx context.Context, id int) (*models.SellerProfile, error) {
	var s models.SellerProfile
	err := r.DB.QueryRow(ctx,
		`SELECT id, username, profit, seller_share, business_share, created_at, updated_at
         FROM seller_profiles WHERE id=$1`, id,
	).Scan(&s.ID, &s.Username, &s.Profit, &s.SellerShare, &s.BusinessShare,
		&s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

func (r *SellerProfileRepository) GetForUpdateTx(ctx context.Context, tx pgx.Tx, id int) (*models.SellerProfile, error) {
	var s models.SellerProfile
	err := tx.QueryRow(ctx,
		`SELECT id, username, profit, seller_share, business_share, created_at, updated_at
         FROM seller_profiles WHERE id=$1 FOR UPDATE`, id,
	).Scan(&s.ID, &s.Username, &s.Profit, &s.SellerShare, &s.BusinessShare,
		&s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

func (r *SellerProfileRepository) List(ctx context.Context) ([]*models.SellerProfile, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, username, profit, seller_share, business_share, created_at, updated_at
         FROM seller_profiles ORDER BY username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sellers []*models.SellerProfile
	for rows.Next() {
		var s models.SellerProfile
		if err := rows.Scan(&s.ID, &s.Username, &s.Profit, &s.SellerShare, &s.BusinessShare,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		sellers = append(sellers, &s)
	}
	return sellers, rows.Err()
}

func (r *SellerProfileRepository) AddProfitTx(ctx context.Context, tx pgx.Tx, id int, delta int64) error {
	_, err := tx.Exec(ctx,
		`UPDATE seller_profiles SET profit = profit + $2, updated_at = NOW() WHERE id=$1`,
		id, delta)
	return err
}

func (r *SellerProfileRepository) SetSharesTx(ctx context.Context, tx pgx.Tx, id, sellerShare, businessShare int) error {
	_, err := tx.Exec(ctx,
		`UPDATE seller_profiles SET seller_share=$2, business_share=$3, updated_at = NOW() WHERE id=$1`,
		id, sellerShare, businessShare)
	return err
}

func (r *SellerProfileRepository) SumProfitTx(ctx context.Context, tx pgx.Tx) (int64, error) {
	var total int64
	err := tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(profit), 0) FROM seller_profiles`).Scan(&total)
	return total, err
}

func (r *SellerProfileRepository) ZeroAllProfitsTx(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx,
		`UPDATE seller_profiles SET profit = 0, updated_at = NOW()`)
	return err
}
