package services

import (
	"context"
	"errors"
	"log"
	"strconv"

	"mobileshop-backend/internal/metrics"
	"mobileshop-backend/internal/models"
	"mobileshop-backend/internal/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReturnService records returns against cash orders. Returns are financial
// corrections only: they adjust seller profit per reason branch and never
// touch stock counters or company balances.
type ReturnService struct {
	DB         *pgxpool.Pool
	ReturnRepo *repositories.ReturnRepository
	OrderRepo  *repositories.CashOrderRepository
	SellerRepo *repositories.SellerProfileRepository
}

func NewReturnService(db *pgxpool.Pool, returnRepo *repositories.ReturnRepository, orderRepo *repositories.CashOrderRepository, sellerRepo *repositories.SellerProfileRepository) *ReturnService {
	return &ReturnService{
		DB:         db,
		ReturnRepo: returnRepo,
		OrderRepo:  orderRepo,
		SellerRepo: sellerRepo,
	}
}

func (s *ReturnService) CreateReturn(ctx context.Context, req *models.CreateReturnRequest) (*models.ReturnCashOrder, error) {
	switch req.Reason {
	case models.ReturnReasonNotInterested, models.ReturnReasonIssue:
	case models.ReturnReasonCustom:
		if req.ReturnAmount < 0 {
			return nil, errors.New("return amount cannot be negative")
		}
	default:
		return nil, errors.New("reason must be NOT_INTERESTED, ISSUE or CUSTOM")
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	order, err := s.OrderRepo.GetForUpdateTx(ctx, tx, req.CashOrderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &models.NotFoundError{Entity: "order", ID: strconv.Itoa(req.CashOrderID)}
		}
		return nil, err
	}

	already, err := s.ReturnRepo.ExistsForOrderTx(ctx, tx, order.ID)
	if err != nil {
		return nil, err
	}
	if already {
		return nil, &models.InvalidStateError{Entity: "order", ID: strconv.Itoa(order.ID),
			Reason: "a return is already recorded against this order"}
	}

	seller, err := s.SellerRepo.GetForUpdateTx(ctx, tx, order.SellerID)
	if err != nil {
		return nil, err
	}

	_, costs, err := s.OrderRepo.ItemsTx(ctx, tx, order.ID)
	if err != nil {
		return nil, err
	}

	ret := &models.ReturnCashOrder{
		CashOrderID: order.ID,
		Reason:      req.Reason,
	}

	var sellerDelta int64
	switch req.Reason {
	case models.ReturnReasonNotInterested:
		// Goods come back, money goes back: financially no sale happened,
		// so the distributed profit stands untouched and the recorded
		// amount is the goods' cost.
		for _, cost := range costs {
			ret.ReturnAmount += cost
		}
	case models.ReturnReasonIssue:
		// Full refund of the sale price; claw back the seller's cut of the
		// order profit. Owner and business keep theirs.
		ret.ReturnAmount = order.TotalAmount
		sellerDelta = -ShareCut(order.TotalProfit, seller.SellerShare)
	case models.ReturnReasonCustom:
		// Caller names the refund; the order's effective profit becomes
		// total_amount - return_amount and the seller's cut is corrected
		// to match it.
		ret.ReturnAmount = req.ReturnAmount
		newProfit := order.TotalAmount - req.ReturnAmount
		sellerDelta = ShareCut(newProfit, seller.SellerShare) - ShareCut(order.TotalProfit, seller.SellerShare)
	}

	if sellerDelta != 0 {
		if err := s.SellerRepo.AddProfitTx(ctx, tx, seller.ID, sellerDelta); err != nil {
			return nil, err
		}
	}
	if err := s.ReturnRepo.CreateTx(ctx, tx, ret); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.ReturnsTotal.WithLabelValues(req.Reason).Inc()
	log.Printf("[Return] Return %d against order %d (%s): amount=%d seller delta=%d",
		ret.ID, order.ID, req.Reason, ret.ReturnAmount, sellerDelta)
	return ret, nil
}

func (s *ReturnService) ListReturns(ctx context.Context, fromStr, toStr string) ([]*models.ReturnCashOrder, error) {
	from, to, err := parseDateRange(fromStr, toStr)
	if err != nil {
		return nil, err
	}
	returns, err := s.ReturnRepo.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for _, ret := range returns {
		order, err := s.OrderRepo.Get(ctx, ret.CashOrderID)
		if err != nil {
			return nil, err
		}
		ret.CashOrder = order
	}
	return returns, nil
}
