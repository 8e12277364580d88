package repositories

import (
	"context"

	"mobileshop-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CreditRepository struct {
	DB *pgxpool.Pool
}

func NewCreditRepository(db *pgxpool.Pool) *CreditRepository {
	return &CreditRepository{DB: db}
}

func (r *CreditRepository) CreateTx(ctx context.Context, tx pgx.Tx, c *models.Credit) error {
	return tx.QueryRow(ctx,
		`INSERT INTO credits(customer_name, payment_status, quantity)
         VALUES($1, $2, $3)
         RETURNING id, created_at, updated_at`,
		c.CustomerName, c.PaymentStatus, c.Quantity,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CreditRepository) InsertItemTx(ctx context.Context, tx pgx.Tx, item *models.CreditItem) error {
	return tx.QueryRow(ctx,
		`INSERT INTO credit_items(credit_id, unit_id, batch_id, price)
         VALUES($1, $2, $3, $4)
         RETURNING id, created_at`,
		item.CreditID, item.UnitID, item.BatchID, item.Price,
	).Scan(&item.ID, &item.CreatedAt)
}

func (r *CreditRepository) Get(ctx context.Context, id int) (*models.Credit, error) {
	var c models.Credit
	err := r.DB.QueryRow(ctx,
		`SELECT id, customer_name, payment_status, quantity, created_at, updated_at
         FROM credits WHERE id=$1`, id,
	).Scan(&c.ID, &c.CustomerName, &c.PaymentStatus, &c.Quantity, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	items, err := r.items(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Items = items
	return &c, nil
}

func (r *CreditRepository) GetForUpdateTx(ctx context.Context, tx pgx.Tx, id int) (*models.Credit, error) {
	var c models.Credit
	err := tx.QueryRow(ctx,
		`SELECT id, customer_name, payment_status, quantity, created_at, updated_at
         FROM credits WHERE id=$1 FOR UPDATE`, id,
	).Scan(&c.ID, &c.CustomerName, &c.PaymentStatus, &c.Quantity, &c.CreatedAt, &c.UpdatedAt)
	return &c, err
}

func (r *CreditRepository) ItemsTx(ctx context.Context, tx pgx.Tx, creditID int) ([]models.CreditItem, error) {
	rows, err := tx.Query(ctx,
		`SELECT i.id, i.credit_id, i.unit_id, u.serial, i.batch_id, p.name, i.price, i.created_at
         FROM credit_items i
         JOIN units u ON u.id = i.unit_id
         JOIN stock_batches b ON b.id = i.batch_id
         JOIN products p ON p.id = b.product_id
         WHERE i.credit_id=$1
         ORDER BY i.id`, creditID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCreditItems(rows)
}

func (r *CreditRepository) items(ctx context.Context, creditID int) ([]models.CreditItem, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT i.id, i.credit_id, i.unit_id, u.serial, i.batch_id, p.name, i.price, i.created_at
         FROM credit_items i
         JOIN units u ON u.id = i.unit_id
         JOIN stock_batches b ON b.id = i.batch_id
         JOIN products p ON p.id = b.product_id
         WHERE i.credit_id=$1
         ORDER BY i.id`, creditID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCreditItems(rows)
}

func (r *CreditRepository) List(ctx context.Context) ([]*models.Credit, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, customer_name, payment_status, quantity, created_at, updated_at
         FROM credits ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var credits []*models.Credit
	for rows.Next() {
		var c models.Credit
		if err := rows.Scan(&c.ID, &c.CustomerName, &c.PaymentStatus, &c.Quantity,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		credits = append(credits, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, c := range credits {
		items, err := r.items(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		c.Items = items
	}
	return credits, nil
}

func (r *CreditRepository) AddQuantityTx(ctx context.Context, tx pgx.Tx, id, delta int) error {
	_, err := tx.Exec(ctx,
		`UPDATE credits SET quantity = quantity + $2, updated_at = NOW() WHERE id=$1`, id, delta)
	return err
}

func (r *CreditRepository) SetStatusTx(ctx context.Context, tx pgx.Tx, id int, status string) error {
	_, err := tx.Exec(ctx,
		`UPDATE credits SET payment_status=$2, updated_at = NOW() WHERE id=$1`, id, status)
	return err
}

// DeleteTx removes the credit header; items go with it via cascade.
func (r *CreditRepository) DeleteTx(ctx context.Context, tx pgx.Tx, id int) error {
	_, err := tx.Exec(ctx, `DELETE FROM credits WHERE id=$1`, id)
	return err
}

func scanCreditItems(rows pgx.Rows) ([]models.CreditItem, error) {
	var items []models.CreditItem
	for rows.Next() {
		var it models.CreditItem
		if err := rows.Scan(&it.ID, &it.CreditID, &it.UnitID, &it.UnitSerial, &it.BatchID,
			&it.ProductName, &it.Price, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
