package services

import (
	"context"
	"log"

	"mobileshop-backend/internal/metrics"
	"mobileshop-backend/internal/models"
	"mobileshop-backend/internal/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ClosureService runs the period close: snapshot seller commissions and the
// business balance, then reset both. The owner balance accumulates across
// closures and is never reset.
type ClosureService struct {
	DB          *pgxpool.Pool
	ClosureRepo *repositories.WeekClosureRepository
	SellerRepo  *repositories.SellerProfileRepository
	CompanyRepo *repositories.CompanyProfileRepository
}

func NewClosureService(db *pgxpool.Pool, closureRepo *repositories.WeekClosureRepository, sellerRepo *repositories.SellerProfileRepository, companyRepo *repositories.CompanyProfileRepository) *ClosureService {
	return &ClosureService{
		DB:          db,
		ClosureRepo: closureRepo,
		SellerRepo:  sellerRepo,
		CompanyRepo: companyRepo,
	}
}

// ClosePeriod is irreversible. The snapshot row is never mutated afterward.
func (s *ClosureService) ClosePeriod(ctx context.Context) (*models.WeekClosure, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	company, err := s.CompanyRepo.GetForUpdateTx(ctx, tx)
	if err != nil {
		return nil, err
	}
	totalProfit, err := s.SellerRepo.SumProfitTx(ctx, tx)
	if err != nil {
		return nil, err
	}

	closure := &models.WeekClosure{
		TotalProfit:    totalProfit,
		BusinessProfit: company.BusinessBalance,
	}
	if err := s.ClosureRepo.CreateTx(ctx, tx, closure); err != nil {
		return nil, err
	}
	if err := s.SellerRepo.ZeroAllProfitsTx(ctx, tx); err != nil {
		return nil, err
	}
	if err := s.CompanyRepo.ZeroBusinessTx(ctx, tx); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.PeriodClosuresTotal.Inc()
	log.Printf("[Closure] Closed period %d: total_profit=%d business_profit=%d",
		closure.ID, closure.TotalProfit, closure.BusinessProfit)
	return closure, nil
}

func (s *ClosureService) ListClosures(ctx context.Context) ([]*models.WeekClosure, error) {
	return s.ClosureRepo.List(ctx)
}
