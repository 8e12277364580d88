package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"time"

	"mobileshop-backend/internal/metrics"
	"mobileshop-backend/internal/models"
	"mobileshop-backend/internal/repositories"
	"mobileshop-backend/internal/timeutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OrderService owns the sale path: order creation with stock movement and
// profit distribution, and order deletion with full reversal. Orders are
// append/delete only; there is no edit path.
type OrderService struct {
	DB          *pgxpool.Pool
	OrderRepo   *repositories.CashOrderRepository
	TxnRepo     *repositories.TransactionRepository
	BatchRepo   *repositories.StockBatchRepository
	UnitRepo    *repositories.UnitRepository
	SellerRepo  *repositories.SellerProfileRepository
	CompanyRepo *repositories.CompanyProfileRepository
	SettingRepo *repositories.SettingRepository
	ReturnRepo  *repositories.ReturnRepository
}

func NewOrderService(db *pgxpool.Pool, orderRepo *repositories.CashOrderRepository, txnRepo *repositories.TransactionRepository, batchRepo *repositories.StockBatchRepository, unitRepo *repositories.UnitRepository, sellerRepo *repositories.SellerProfileRepository, companyRepo *repositories.CompanyProfileRepository, settingRepo *repositories.SettingRepository, returnRepo *repositories.ReturnRepository) *OrderService {
	return &OrderService{
		DB:          db,
		OrderRepo:   orderRepo,
		TxnRepo:     txnRepo,
		BatchRepo:   batchRepo,
		UnitRepo:    unitRepo,
		SellerRepo:  sellerRepo,
		CompanyRepo: companyRepo,
		SettingRepo: settingRepo,
		ReturnRepo:  returnRepo,
	}
}

func (s *OrderService) CreateOrder(ctx context.Context, req *models.CreateCashOrderRequest) (*models.CashOrder, error) {
	if len(req.Items) == 0 {
		return nil, errors.New("order must have at least one line item")
	}
	seen := make(map[string]bool, len(req.Items))
	for _, item := range req.Items {
		if item.Serial == "" {
			return nil, errors.New("line item serial cannot be empty")
		}
		if item.Price < 0 {
			return nil, errors.New("line item price cannot be negative")
		}
		if seen[item.Serial] {
			return nil, &models.DuplicateUnitError{Serial: item.Serial, Reason: "listed more than once"}
		}
		seen[item.Serial] = true
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	seller, err := s.SellerRepo.GetForUpdateTx(ctx, tx, req.SellerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &models.NotFoundError{Entity: "seller", ID: strconv.Itoa(req.SellerID)}
		}
		return nil, err
	}
	setting, err := s.SettingRepo.GetTx(ctx, tx)
	if err != nil {
		return nil, err
	}
	if _, err := s.CompanyRepo.GetForUpdateTx(ctx, tx); err != nil {
		return nil, err
	}

	// Lock batches in ascending id order so concurrent orders touching the
	// same batches cannot deadlock.
	needed := make(map[int]int)
	for _, item := range req.Items {
		needed[item.BatchID]++
	}
	batchIDs := make([]int, 0, len(needed))
	for id := range needed {
		batchIDs = append(batchIDs, id)
	}
	sort.Ints(batchIDs)

	batches := make(map[int]*models.StockBatch, len(batchIDs))
	for _, id := range batchIDs {
		batch, err := s.BatchRepo.GetForUpdateTx(ctx, tx, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, &models.NotFoundError{Entity: "batch", ID: strconv.Itoa(id)}
			}
			return nil, err
		}
		if batch.AvailableStock < needed[id] {
			return nil, &models.InsufficientStockError{BatchID: id, Available: batch.AvailableStock}
		}
		batches[id] = batch
	}

	var totalAmount, totalProfit int64
	unitIDs := make([]int, 0, len(req.Items))
	for _, item := range req.Items {
		unit, err := s.UnitRepo.GetBySerialTx(ctx, tx, item.Serial)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, &models.NotFoundError{Entity: "unit", ID: item.Serial}
			}
			return nil, err
		}
		if unit.BatchID == nil || *unit.BatchID != item.BatchID {
			return nil, &models.InvalidStateError{Entity: "unit", ID: item.Serial,
				Reason: fmt.Sprintf("not a member of batch %d", item.BatchID)}
		}
		committed, err := s.UnitRepo.CommitmentTx(ctx, tx, unit.ID)
		if err != nil {
			return nil, err
		}
		if committed != "" {
			return nil, &models.DuplicateUnitError{Serial: item.Serial, Reason: committed}
		}
		unitIDs = append(unitIDs, unit.ID)
		totalAmount += item.Price
		totalProfit += item.Price - batches[item.BatchID].PurchasingPrice
	}

	order := &models.CashOrder{
		UniqueID:     uuid.New().String(),
		CustomerName: req.CustomerName,
		SellerID:     req.SellerID,
		Warranty:     req.Warranty,
		Quantity:     len(req.Items),
		TotalAmount:  totalAmount,
		TotalProfit:  totalProfit,
	}
	if err := s.OrderRepo.CreateTx(ctx, tx, order); err != nil {
		return nil, err
	}

	for i, item := range req.Items {
		line := &models.CashOrderItem{
			CashOrderID: order.ID,
			UnitID:      unitIDs[i],
			BatchID:     item.BatchID,
			Price:       item.Price,
		}
		if err := s.OrderRepo.InsertItemTx(ctx, tx, line); err != nil {
			return nil, err
		}
	}

	for _, id := range batchIDs {
		batch := batches[id]
		batch.AvailableStock -= needed[id]
		batch.Sold += needed[id]
		if err := s.BatchRepo.UpdateCountersTx(ctx, tx, batch); err != nil {
			return nil, err
		}
	}

	if err := s.distributeTx(ctx, tx, order, seller, setting.OwnerShare); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()
	log.Printf("[Order] Created order %d (%s): %d units, amount=%d profit=%d seller=%d",
		order.ID, order.UniqueID, order.Quantity, order.TotalAmount, order.TotalProfit, order.SellerID)
	return s.OrderRepo.Get(ctx, order.ID)
}

// distributeTx applies the profit split for an order. Idempotent: the
// UNIQUE transaction row per order means a second call is a no-op, so
// balances are only ever touched once per order.
func (s *OrderService) distributeTx(ctx context.Context, tx pgx.Tx, order *models.CashOrder, seller *models.SellerProfile, ownerShare int) error {
	exists, err := s.TxnRepo.ExistsForOrderTx(ctx, tx, order.ID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	txn := &models.Transaction{
		CashOrderID:    order.ID,
		TotalProfit:    order.TotalProfit,
		SellerProfit:   ShareCut(order.TotalProfit, seller.SellerShare),
		OwnerProfit:    ShareCut(order.TotalProfit, ownerShare),
		BusinessProfit: ShareCut(order.TotalProfit, seller.BusinessShare),
	}
	if err := s.TxnRepo.CreateTx(ctx, tx, txn); err != nil {
		return err
	}
	if err := s.SellerRepo.AddProfitTx(ctx, tx, seller.ID, txn.SellerProfit); err != nil {
		return err
	}
	return s.CompanyRepo.AddBalancesTx(ctx, tx, txn.OwnerProfit, txn.BusinessProfit)
}

// DeleteOrder reverses everything the create did: stock counters, the
// three distributed profit figures, the transaction row, the items, and
// the order itself, as one atomic unit.
func (s *OrderService) DeleteOrder(ctx context.Context, id int) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	order, err := s.OrderRepo.GetForUpdateTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &models.NotFoundError{Entity: "order", ID: strconv.Itoa(id)}
		}
		return err
	}

	returned, err := s.ReturnRepo.ExistsForOrderTx(ctx, tx, id)
	if err != nil {
		return err
	}
	if returned {
		return &models.InvalidStateError{Entity: "order", ID: strconv.Itoa(id),
			Reason: "a return is recorded against this order"}
	}

	if _, err := s.SellerRepo.GetForUpdateTx(ctx, tx, order.SellerID); err != nil {
		return err
	}
	if _, err := s.CompanyRepo.GetForUpdateTx(ctx, tx); err != nil {
		return err
	}

	items, _, err := s.OrderRepo.ItemsTx(ctx, tx, id)
	if err != nil {
		return err
	}

	restock := make(map[int]int)
	for _, item := range items {
		restock[item.BatchID]++
	}
	batchIDs := make([]int, 0, len(restock))
	for bid := range restock {
		batchIDs = append(batchIDs, bid)
	}
	sort.Ints(batchIDs)

	for _, bid := range batchIDs {
		batch, err := s.BatchRepo.GetForUpdateTx(ctx, tx, bid)
		if err != nil {
			return err
		}
		batch.AvailableStock += restock[bid]
		batch.Sold -= restock[bid]
		if err := s.BatchRepo.UpdateCountersTx(ctx, tx, batch); err != nil {
			return err
		}
	}

	txn, err := s.TxnRepo.GetByOrderTx(ctx, tx, id)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	if err == nil {
		if err := s.SellerRepo.AddProfitTx(ctx, tx, order.SellerID, -txn.SellerProfit); err != nil {
			return err
		}
		if err := s.CompanyRepo.AddBalancesTx(ctx, tx, -txn.OwnerProfit, -txn.BusinessProfit); err != nil {
			return err
		}
		if err := s.TxnRepo.DeleteByOrderTx(ctx, tx, id); err != nil {
			return err
		}
	}

	if err := s.OrderRepo.DeleteTx(ctx, tx, id); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	metrics.OrdersDeletedTotal.Inc()
	log.Printf("[Order] Deleted order %d with full reversal", id)
	return nil
}

// UpdateOrder exists only to say no. Editing a distributed order would
// desynchronize its Transaction; the supported path is delete and recreate.
func (s *OrderService) UpdateOrder(ctx context.Context, id int) error {
	if _, err := s.OrderRepo.Get(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &models.NotFoundError{Entity: "order", ID: strconv.Itoa(id)}
		}
		return err
	}
	return &models.InvalidStateError{Entity: "order", ID: strconv.Itoa(id),
		Reason: "orders cannot be edited once created"}
}

func (s *OrderService) GetOrder(ctx context.Context, id int) (*models.CashOrder, error) {
	order, err := s.OrderRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &models.NotFoundError{Entity: "order", ID: strconv.Itoa(id)}
		}
		return nil, err
	}
	return order, nil
}

// ListOrders returns orders inside an inclusive IST date range. Empty
// bounds widen to all history.
func (s *OrderService) ListOrders(ctx context.Context, fromStr, toStr string) ([]*models.CashOrder, error) {
	from, to, err := parseDateRange(fromStr, toStr)
	if err != nil {
		return nil, err
	}
	return s.OrderRepo.ListByDateRange(ctx, from, to)
}

func (s *OrderService) ListTransactions(ctx context.Context, fromStr, toStr string) ([]*models.Transaction, error) {
	from, to, err := parseDateRange(fromStr, toStr)
	if err != nil {
		return nil, err
	}
	return s.TxnRepo.ListByDateRange(ctx, from, to)
}

func parseDateRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from := time.Time{}
	to := timeutil.EndOfDay(timeutil.Now())

	if fromStr != "" {
		t, err := time.ParseInLocation(timeutil.DateLayout, fromStr, timeutil.IST)
		if err != nil {
			return from, to, fmt.Errorf("invalid from date %q: expected YYYY-MM-DD", fromStr)
		}
		from = timeutil.StartOfDay(t)
	}
	if toStr != "" {
		t, err := time.ParseInLocation(timeutil.DateLayout, toStr, timeutil.IST)
		if err != nil {
			return from, to, fmt.Errorf("invalid to date %q: expected YYYY-MM-DD", toStr)
		}
		to = timeutil.EndOfDay(t)
	}
	return from, to, nil
}
