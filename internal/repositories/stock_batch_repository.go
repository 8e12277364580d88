package repositories

import (
	"context"

	"mobileshop-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StockBatchRepository struct {
	DB *pgxpool.Pool
}

func NewStockBatchRepository(db *pgxpool.Pool) *StockBatchRepository {
	return &StockBatchRepository{DB: db}
}

func (r *StockBatchRepository) CreateTx(ctx context.Context, tx pgx.Tx, b *models.StockBatch) error {
	return tx.QueryRow(ctx,
		`INSERT INTO stock_batches(product_id, vendor_id, purchasing_price, available_stock, asset)
         VALUES($1, $2, $3, $4, $3 * $4)
         RETURNING id, created_at, updated_at`,
		b.ProductID, b.VendorID, b.PurchasingPrice, b.AvailableStock,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *StockBatchRepository) Get(ctx context.Context, id int) (*models.StockBatch, error) {
	var b models.StockBatch
	err := r.DB.QueryRow(ctx,
		`SELECT b.id, b.product_id, p.name, b.vendor_id, b.purchasing_price,
                b.available_stock, b.sold, b.on_credit, b.on_claim, b.asset,
                b.created_at, b.updated_at
         FROM stock_batches b
         JOIN products p ON p.id = b.product_id
         WHERE b.id=$1`, id,
	).Scan(&b.ID, &b.ProductID, &b.ProductName, &b.VendorID, &b.PurchasingPrice,
		&b.AvailableStock, &b.Sold, &b.OnCredit, &b.OnClaim, &b.Asset,
		&b.CreatedAt, &b.UpdatedAt)
	return &b, err
}

// GetForUpdateTx locks the batch row for the rest of the transaction. All
// counter mutations go through this lock so the partition invariant holds
// under concurrent commands.
func (r *StockBatchRepository) GetForUpdateTx(ctx context.Context, tx pgx.Tx, id int) (*models.StockBatch, error) {
	var b models.StockBatch
	err := tx.QueryRow(ctx,
		`SELECT id, product_id, vendor_id, purchasing_price,
                available_stock, sold, on_credit, on_claim, asset,
                created_at, updated_at
         FROM stock_batches WHERE id=$1 FOR UPDATE`, id,
	).Scan(&b.ID, &b.ProductID, &b.VendorID, &b.PurchasingPrice,
		&b.AvailableStock, &b.Sold, &b.OnCredit, &b.OnClaim, &b.Asset,
		&b.CreatedAt, &b.UpdatedAt)
	return &b, err
}

func (r *StockBatchRepository) List(ctx context.Context) ([]*models.StockBatch, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT b.id, b.product_id, p.name, b.vendor_id, b.purchasing_price,
                b.available_stock, b.sold, b.on_credit, b.on_claim, b.asset,
                b.created_at, b.updated_at
         FROM stock_batches b
         JOIN products p ON p.id = b.product_id
         ORDER BY b.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []*models.StockBatch
	for rows.Next() {
		var b models.StockBatch
		if err := rows.Scan(&b.ID, &b.ProductID, &b.ProductName, &b.VendorID, &b.PurchasingPrice,
			&b.AvailableStock, &b.Sold, &b.OnCredit, &b.OnClaim, &b.Asset,
			&b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		batches = append(batches, &b)
	}
	return batches, rows.Err()
}

// UpdateCountersTx writes the four counters and recomputes asset from them.
// Asset never includes sold or claimed units.
func (r *StockBatchRepository) UpdateCountersTx(ctx context.Context, tx pgx.Tx, b *models.StockBatch) error {
	_, err := tx.Exec(ctx,
		`UPDATE stock_batches
         SET available_stock=$2, sold=$3, on_credit=$4, on_claim=$5,
             asset = purchasing_price * ($2 + $4), updated_at = NOW()
         WHERE id=$1`,
		b.ID, b.AvailableStock, b.Sold, b.OnCredit, b.OnClaim)
	return err
}

func (r *StockBatchRepository) AdjustTx(ctx context.Context, tx pgx.Tx, id int, purchasingPrice int64, availableStock int) error {
	_, err := tx.Exec(ctx,
		`UPDATE stock_batches
         SET purchasing_price=$2, available_stock=$3,
             asset = $2 * ($3 + on_credit), updated_at = NOW()
         WHERE id=$1`,
		id, purchasingPrice, availableStock)
	return err
}

func (r *StockBatchRepository) MemberSerials(ctx context.Context, batchID int) ([]string, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT serial FROM units WHERE batch_id=$1 ORDER BY serial`, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var serials []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		serials = append(serials, s)
	}
	return serials, rows.Err()
}

// AvailableSerials lists member serials not held by any sale, credit, or
// open claim. This is the sellable set regardless of what the counter says.
func (r *StockBatchRepository) AvailableSerials(ctx context.Context, batchID int) ([]string, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT u.serial FROM units u
         WHERE u.batch_id = $1
           AND NOT EXISTS (SELECT 1 FROM cash_order_items i WHERE i.unit_id = u.id)
           AND NOT EXISTS (SELECT 1 FROM credit_items ci WHERE ci.unit_id = u.id)
           AND NOT EXISTS (SELECT 1 FROM claims c WHERE c.unit_id = u.id AND c.cleared = FALSE)
         ORDER BY u.serial`, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var serials []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		serials = append(serials, s)
	}
	return serials, rows.Err()
}

// AvailableSerialsByProduct lists the sellable serials across every batch
// of a product.
func (r *StockBatchRepository) AvailableSerialsByProduct(ctx context.Context, productID int) ([]string, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT u.serial FROM units u
         JOIN stock_batches b ON b.id = u.batch_id
         WHERE b.product_id = $1
           AND NOT EXISTS (SELECT 1 FROM cash_order_items i WHERE i.unit_id = u.id)
           AND NOT EXISTS (SELECT 1 FROM credit_items ci WHERE ci.unit_id = u.id)
           AND NOT EXISTS (SELECT 1 FROM claims c WHERE c.unit_id = u.id AND c.cleared = FALSE)
         ORDER BY u.serial`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var serials []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		serials = append(serials, s)
	}
	return serials, rows.Err()
}

// TotalAsset sums asset across all batches.
func (r *StockBatchRepository) TotalAsset(ctx context.Context) (int64, error) {
	var total int64
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(asset), 0) FROM stock_batches`).Scan(&total)
	return total, err
}
