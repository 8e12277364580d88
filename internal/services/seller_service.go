package services

import (
	"context"
	"errors"
	"log"
	"strconv"

	"mobileshop-backend/internal/models"
	"mobileshop-backend/internal/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SellerService struct {
	DB          *pgxpool.Pool
	SellerRepo  *repositories.SellerProfileRepository
	OrderRepo   *repositories.CashOrderRepository
	CompanyRepo *repositories.CompanyProfileRepository
}

func NewSellerService(db *pgxpool.Pool, sellerRepo *repositories.SellerProfileRepository, orderRepo *repositories.CashOrderRepository, companyRepo *repositories.CompanyProfileRepository) *SellerService {
	return &SellerService{
		DB:          db,
		SellerRepo:  sellerRepo,
		OrderRepo:   orderRepo,
		CompanyRepo: companyRepo,
	}
}

func validShares(sellerShare, businessShare int) error {
	if sellerShare < 0 || sellerShare > 100 {
		return errors.New("seller share must be between 0 and 100")
	}
	if businessShare < 0 || businessShare > 100 {
		return errors.New("business share must be between 0 and 100")
	}
	return nil
}

func (s *SellerService) CreateSeller(ctx context.Context, req *models.CreateSellerRequest) (*models.SellerProfile, error) {
	if req.Username == "" {
		return nil, errors.New("username is required")
	}
	if err := validShares(req.SellerShare, req.BusinessShare); err != nil {
		return nil, err
	}

	seller := &models.SellerProfile{
		Username:      req.Username,
		SellerShare:   req.SellerShare,
		BusinessShare: req.BusinessShare,
	}
	if err := s.SellerRepo.Create(ctx, seller); err != nil {
		return nil, err
	}
	log.Printf("[Seller] Created seller %d (%s) shares=%d/%d", seller.ID, seller.Username, seller.SellerShare, seller.BusinessShare)
	return seller, nil
}

func (s *SellerService) GetSeller(ctx context.Context, id int) (*models.SellerProfile, error) {
	seller, err := s.SellerRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &models.NotFoundError{Entity: "seller", ID: strconv.Itoa(id)}
		}
		return nil, err
	}
	return seller, nil
}

func (s *SellerService) ListSellers(ctx context.Context) ([]*models.SellerProfile, error) {
	return s.SellerRepo.List(ctx)
}

// UpdateSellerShare rewrites the seller's share percentages and
// retroactively re-distributes every historical item the seller ever sold:
// seller.profit and the company business balance move by the per-item delta
// between the old and new split. All deltas apply atomically or not at all.
func (s *SellerService) UpdateSellerShare(ctx context.Context, id int, req *models.UpdateSellerShareRequest) (*models.SellerProfile, error) {
	if err := validShares(req.SellerShare, req.BusinessShare); err != nil {
		return nil, err
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	seller, err := s.SellerRepo.GetForUpdateTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &models.NotFoundError{Entity: "seller", ID: strconv.Itoa(id)}
		}
		return nil, err
	}
	if _, err := s.CompanyRepo.GetForUpdateTx(ctx, tx); err != nil {
		return nil, err
	}

	profits, err := s.OrderRepo.ItemProfitsBySellerTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	var sellerDelta, businessDelta int64
	for _, p := range profits {
		sellerDelta += ShareCut(p, req.SellerShare) - ShareCut(p, seller.SellerShare)
		businessDelta += ShareCut(p, req.BusinessShare) - ShareCut(p, seller.BusinessShare)
	}

	if sellerDelta != 0 {
		if err := s.SellerRepo.AddProfitTx(ctx, tx, id, sellerDelta); err != nil {
			return nil, err
		}
	}
	if businessDelta != 0 {
		if err := s.CompanyRepo.AddBalancesTx(ctx, tx, 0, businessDelta); err != nil {
			return nil, err
		}
	}
	if err := s.SellerRepo.SetSharesTx(ctx, tx, id, req.SellerShare, req.BusinessShare); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Printf("[Seller] Updated seller %d shares %d/%d -> %d/%d over %d items (profit delta=%d business delta=%d)",
		id, seller.SellerShare, seller.BusinessShare, req.SellerShare, req.BusinessShare,
		len(profits), sellerDelta, businessDelta)
	return s.GetSeller(ctx, id)
}
