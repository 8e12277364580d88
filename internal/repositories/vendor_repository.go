package repositories

import (
	"context"

	"mobileshop-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type VendorRepository struct {
	DB *pgxpool.Pool
}

func NewVendorRepository(db *pgxpool.Pool) *VendorRepository {
	return &VendorRepository{DB: db}
}

func (r *VendorRepository) Create(ctx context.Context, v *models.Vendor) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO vendors(name) VALUES($1) RETURNING id, created_at`,
		v.Name,
	).Scan(&v.ID, &v.CreatedAt)
}

func (r *VendorRepository) Get(ctx context.Context, id int) (*models.Vendor, error) {
	var v models.Vendor
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, created_at FROM vendors WHERE id=$1`, id,
	).Scan(&v.ID, &v.Name, &v.CreatedAt)
	return &v, err
}

func (r *VendorRepository) List(ctx context.Context) ([]*models.Vendor, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, created_at FROM vendors ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vendors []*models.Vendor
	for rows.Next() {
		var v models.Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.CreatedAt); err != nil {
			return nil, err
		}
		vendors = append(vendors, &v)
	}
	return vendors, rows.Err()
}
