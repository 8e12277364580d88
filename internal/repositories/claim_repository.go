package repositories

import (
	"context"

	"mobileshop-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ClaimRepository struct {
	DB *pgxpool.Pool
}

func NewClaimRepository(db *pgxpool.Pool) *ClaimRepository {
	return &ClaimRepository{DB: db}
}

func (r *ClaimRepository) CreateTx(ctx context.Context, tx pgx.Tx, c *models.Claim) error {
	return tx.QueryRow(ctx,
		`INSERT INTO claims(unit_id, batch_id, reason)
         VALUES($1, $2, $3)
         RETURNING id, cleared, created_at, updated_at`,
		c.UnitID, c.BatchID, c.Reason,
	).Scan(&c.ID, &c.Cleared, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ClaimRepository) Get(ctx context.Context, id int) (*models.Claim, error) {
	var c models.Claim
	err := r.DB.QueryRow(ctx,
		`SELECT c.id, c.unit_id, u.serial, c.batch_id, p.name, v.name,
                c.reason, c.cleared, c.created_at, c.updated_at
         FROM claims c
         JOIN units u ON u.id = c.unit_id
         JOIN stock_batches b ON b.id = c.batch_id
         JOIN products p ON p.id = b.product_id
         JOIN vendors v ON v.id = b.vendor_id
         WHERE c.id=$1`, id,
	).Scan(&c.ID, &c.UnitID, &c.UnitSerial, &c.BatchID, &c.ProductName, &c.VendorName,
		&c.Reason, &c.Cleared, &c.CreatedAt, &c.UpdatedAt)
	return &c, err
}

func (r *ClaimRepository) GetForUpdateTx(ctx context.Context, tx pgx.Tx, id int) (*models.Claim, error) {
	var c models.Claim
	err := tx.QueryRow(ctx,
		`SELECT id, unit_id, batch_id, reason, cleared, created_at, updated_at
         FROM claims WHERE id=$1 FOR UPDATE`, id,
	).Scan(&c.ID, &c.UnitID, &c.BatchID, &c.Reason, &c.Cleared, &c.CreatedAt, &c.UpdatedAt)
	return &c, err
}

func (r *ClaimRepository) List(ctx context.Context) ([]*models.Claim, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT c.id, c.unit_id, u.serial, c.batch_id, p.name, v.name,
                c.reason, c.cleared, c.created_at, c.updated_at
         FROM claims c
         JOIN units u ON u.id = c.unit_id
         JOIN stock_batches b ON b.id = c.batch_id
         JOIN products p ON p.id = b.product_id
         JOIN vendors v ON v.id = b.vendor_id
         ORDER BY c.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []*models.Claim
	for rows.Next() {
		var c models.Claim
		if err := rows.Scan(&c.ID, &c.UnitID, &c.UnitSerial, &c.BatchID, &c.ProductName, &c.VendorName,
			&c.Reason, &c.Cleared, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		claims = append(claims, &c)
	}
	return claims, rows.Err()
}

func (r *ClaimRepository) SetClearedTx(ctx context.Context, tx pgx.Tx, id int, cleared bool) error {
	_, err := tx.Exec(ctx,
		`UPDATE claims SET cleared=$2, updated_at = NOW() WHERE id=$1`, id, cleared)
	return err
}

func (r *ClaimRepository) DeleteTx(ctx context.Context, tx pgx.Tx, id int) error {
	_, err := tx.Exec(ctx, `DELETE FROM claims WHERE id=$1`, id)
	return err
}
