package repositories

import (
	"context"
	"time"

	"mobileshop-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CashOrderRepository struct {
	DB *pgxpool.Pool
}

func NewCashOrderRepository(db *pgxpool.Pool) *CashOrderRepository {
	return &CashOrderRepository{DB: db}
}

func (r *CashOrderRepository) CreateTx(ctx context.Context, tx pgx.Tx, o *models.CashOrder) error {
	return tx.QueryRow(ctx,
		`INSERT INTO cash_orders(unique_id, customer_name, seller_id, warranty, quantity, total_amount, total_profit)
         VALUES($1, $2, $3, $4, $5, $6, $7)
         RETURNING id, created_at, updated_at`,
		o.UniqueID, o.CustomerName, o.SellerID, o.Warranty, o.Quantity, o.TotalAmount, o.TotalProfit,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
}

func (r *CashOrderRepository) InsertItemTx(ctx context.Context, tx pgx.Tx, item *models.CashOrderItem) error {
	return tx.QueryRow(ctx,
		`INSERT INTO cash_order_items(cash_order_id, unit_id, batch_id, price)
         VALUES($1, $2, $3, $4)
         RETURNING id, created_at`,
		item.CashOrderID, item.UnitID, item.BatchID, item.Price,
	).Scan(&item.ID, &item.CreatedAt)
}

func (r *CashOrderRepository) Get(ctx context.Context, id int) (*models.CashOrder, error) {
	var o models.CashOrder
	err := r.DB.QueryRow(ctx,
		`SELECT o.id, o.unique_id, o.customer_name, o.seller_id, s.username,
                o.warranty, o.quantity, o.total_amount, o.total_profit,
                o.created_at, o.updated_at
         FROM cash_orders o
         JOIN seller_profiles s ON s.id = o.seller_id
         WHERE o.id=$1`, id,
	).Scan(&o.ID, &o.UniqueID, &o.CustomerName, &o.SellerID, &o.SellerName,
		&o.Warranty, &o.Quantity, &o.TotalAmount, &o.TotalProfit,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}

	items, err := r.Items(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *CashOrderRepository) GetForUpdateTx(ctx context.Context, tx pgx.Tx, id int) (*models.CashOrder, error) {
	var o models.CashOrder
	err := tx.QueryRow(ctx,
		`SELECT id, unique_id, customer_name, seller_id, warranty, quantity,
                total_amount, total_profit, created_at, updated_at
         FROM cash_orders WHERE id=$1 FOR UPDATE`, id,
	).Scan(&o.ID, &o.UniqueID, &o.CustomerName, &o.SellerID, &o.Warranty, &o.Quantity,
		&o.TotalAmount, &o.TotalProfit, &o.CreatedAt, &o.UpdatedAt)
	return &o, err
}

func (r *CashOrderRepository) Items(ctx context.Context, orderID int) ([]models.CashOrderItem, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT i.id, i.cash_order_id, i.unit_id, u.serial, i.batch_id, p.name, i.price, i.created_at
         FROM cash_order_items i
         JOIN units u ON u.id = i.unit_id
         JOIN stock_batches b ON b.id = i.batch_id
         JOIN products p ON p.id = b.product_id
         WHERE i.cash_order_id=$1
         ORDER BY i.id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrderItems(rows)
}

// ItemsTx reads the order's lines with each batch's purchasing price, so
// callers can rebuild per-item profit inside the same transaction.
func (r *CashOrderRepository) ItemsTx(ctx context.Context, tx pgx.Tx, orderID int) ([]models.CashOrderItem, []int64, error) {
	rows, err := tx.Query(ctx,
		`SELECT i.id, i.cash_order_id, i.unit_id, u.serial, i.batch_id, p.name, i.price, i.created_at,
                b.purchasing_price
         FROM cash_order_items i
         JOIN units u ON u.id = i.unit_id
         JOIN stock_batches b ON b.id = i.batch_id
         JOIN products p ON p.id = b.product_id
         WHERE i.cash_order_id=$1
         ORDER BY i.id`, orderID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var items []models.CashOrderItem
	var costs []int64
	for rows.Next() {
		var it models.CashOrderItem
		var cost int64
		if err := rows.Scan(&it.ID, &it.CashOrderID, &it.UnitID, &it.UnitSerial, &it.BatchID,
			&it.ProductName, &it.Price, &it.CreatedAt, &cost); err != nil {
			return nil, nil, err
		}
		items = append(items, it)
		costs = append(costs, cost)
	}
	return items, costs, rows.Err()
}

func (r *CashOrderRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]*models.CashOrder, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT o.id, o.unique_id, o.customer_name, o.seller_id, s.username,
                o.warranty, o.quantity, o.total_amount, o.total_profit,
                o.created_at, o.updated_at
         FROM cash_orders o
         JOIN seller_profiles s ON s.id = o.seller_id
         WHERE o.created_at >= $1 AND o.created_at <= $2
         ORDER BY o.created_at DESC`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.CashOrder
	for rows.Next() {
		var o models.CashOrder
		if err := rows.Scan(&o.ID, &o.UniqueID, &o.CustomerName, &o.SellerID, &o.SellerName,
			&o.Warranty, &o.Quantity, &o.TotalAmount, &o.TotalProfit,
			&o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, o := range orders {
		items, err := r.Items(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}
	return orders, nil
}

// ItemProfitsBySellerTx returns the per-item profit of every item the
// seller has ever sold. This is the working set of a retroactive share
// recompute, which operates item by item rather than on order totals.
func (r *CashOrderRepository) ItemProfitsBySellerTx(ctx context.Context, tx pgx.Tx, sellerID int) ([]int64, error) {
	rows, err := tx.Query(ctx,
		`SELECT i.price - b.purchasing_price
         FROM cash_order_items i
         JOIN cash_orders o ON o.id = i.cash_order_id
         JOIN stock_batches b ON b.id = i.batch_id
         WHERE o.seller_id=$1
         ORDER BY i.id`, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profits []int64
	for rows.Next() {
		var p int64
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		profits = append(profits, p)
	}
	return profits, rows.Err()
}

// DeleteTx removes the order header; items go with it via cascade.
func (r *CashOrderRepository) DeleteTx(ctx context.Context, tx pgx.Tx, id int) error {
	_, err := tx.Exec(ctx, `DELETE FROM cash_orders WHERE id=$1`, id)
	return err
}

func scanOrderItems(rows pgx.Rows) ([]models.CashOrderItem, error) {
	var items []models.CashOrderItem
	for rows.Next() {
		var it models.CashOrderItem
		if err := rows.Scan(&it.ID, &it.CashOrderID, &it.UnitID, &it.UnitSerial, &it.BatchID,
			&it.ProductName, &it.Price, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
