package repositories

import (
	"context"

	"mobileshop-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UnitRepository struct {
	DB *pgxpool.Pool
}

func NewUnitRepository(db *pgxpool.Pool) *UnitRepository {
	return &UnitRepository{DB: db}
}

func (r *UnitRepository) GetBySerial(ctx context.Context, serial string) (*models.Unit, error) {
	var u models.Unit
	err := r.DB.QueryRow(ctx,
		`SELECT id, serial, batch_id, created_at FROM units WHERE serial=$1`, serial,
	).Scan(&u.ID, &u.Serial, &u.BatchID, &u.CreatedAt)
	return &u, err
}

// GetOrCreateTx registers a serial if it is new and returns the row either
// way. The no-op DO UPDATE makes RETURNING work on the conflict path.
func (r *UnitRepository) GetOrCreateTx(ctx context.Context, tx pgx.Tx, serial string) (*models.Unit, error) {
	var u models.Unit
	err := tx.QueryRow(ctx,
		`INSERT INTO units(serial) VALUES($1)
         ON CONFLICT (serial) DO UPDATE SET serial = EXCLUDED.serial
         RETURNING id, serial, batch_id, created_at`, serial,
	).Scan(&u.ID, &u.Serial, &u.BatchID, &u.CreatedAt)
	return &u, err
}

func (r *UnitRepository) GetBySerialTx(ctx context.Context, tx pgx.Tx, serial string) (*models.Unit, error) {
	var u models.Unit
	err := tx.QueryRow(ctx,
		`SELECT id, serial, batch_id, created_at FROM units WHERE serial=$1 FOR UPDATE`, serial,
	).Scan(&u.ID, &u.Serial, &u.BatchID, &u.CreatedAt)
	return &u, err
}

func (r *UnitRepository) AssignBatchTx(ctx context.Context, tx pgx.Tx, unitID, batchID int) error {
	_, err := tx.Exec(ctx,
		`UPDATE units SET batch_id=$2 WHERE id=$1`, unitID, batchID)
	return err
}

// CommitmentTx reports where the unit is currently bound, or "" when it is
// free. Cleared claims do not hold a unit; credit items keep holding it
// even after the credit is cleared, since the unit counts as sold then.
func (r *UnitRepository) CommitmentTx(ctx context.Context, tx pgx.Tx, unitID int) (string, error) {
	var state string
	err := tx.QueryRow(ctx,
		`SELECT CASE
            WHEN EXISTS (SELECT 1 FROM cash_order_items WHERE unit_id=$1) THEN 'already sold'
            WHEN EXISTS (SELECT 1 FROM credit_items WHERE unit_id=$1) THEN 'already on credit'
            WHEN EXISTS (SELECT 1 FROM claims WHERE unit_id=$1 AND cleared=FALSE) THEN 'under an open claim'
            ELSE ''
         END`, unitID,
	).Scan(&state)
	return state, err
}
