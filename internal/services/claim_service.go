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

// ClaimService tracks defective units returned to their vendor. An open
// claim moves the unit from available_stock to on_claim; clearance restocks
// it. Deletion reverses whichever adjustment is currently in effect, so the
// counter partition always sums to the batch's member units.
type ClaimService struct {
	DB        *pgxpool.Pool
	ClaimRepo *repositories.ClaimRepository
	BatchRepo *repositories.StockBatchRepository
	UnitRepo  *repositories.UnitRepository
}

func NewClaimService(db *pgxpool.Pool, claimRepo *repositories.ClaimRepository, batchRepo *repositories.StockBatchRepository, unitRepo *repositories.UnitRepository) *ClaimService {
	return &ClaimService{
		DB:        db,
		ClaimRepo: claimRepo,
		BatchRepo: batchRepo,
		UnitRepo:  unitRepo,
	}
}

func (s *ClaimService) CreateClaim(ctx context.Context, req *models.CreateClaimRequest) (*models.Claim, error) {
	if req.Serial == "" {
		return nil, errors.New("unit serial is required")
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	unit, err := s.UnitRepo.GetBySerialTx(ctx, tx, req.Serial)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &models.NotFoundError{Entity: "unit", ID: req.Serial}
		}
		return nil, err
	}
	if unit.BatchID == nil {
		return nil, &models.InvalidStateError{Entity: "unit", ID: req.Serial,
			Reason: "not registered to any batch"}
	}

	committed, err := s.UnitRepo.CommitmentTx(ctx, tx, unit.ID)
	if err != nil {
		return nil, err
	}
	if committed != "" {
		return nil, &models.DuplicateUnitError{Serial: req.Serial, Reason: committed}
	}

	batch, err := s.BatchRepo.GetForUpdateTx(ctx, tx, *unit.BatchID)
	if err != nil {
		return nil, err
	}
	if batch.AvailableStock < 1 {
		return nil, &models.InsufficientStockError{BatchID: batch.ID, Available: batch.AvailableStock}
	}

	claim := &models.Claim{
		UnitID:  unit.ID,
		BatchID: batch.ID,
		Reason:  req.Reason,
	}
	if err := s.ClaimRepo.CreateTx(ctx, tx, claim); err != nil {
		return nil, err
	}

	batch.AvailableStock--
	batch.OnClaim++
	if err := s.BatchRepo.UpdateCountersTx(ctx, tx, batch); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.ClaimsTotal.Inc()
	log.Printf("[Claim] Opened claim %d for unit %s (batch %d)", claim.ID, req.Serial, batch.ID)
	return s.GetClaim(ctx, claim.ID)
}

// ResolveClaim clears an open claim, restocking the unit.
func (s *ClaimService) ResolveClaim(ctx context.Context, id int) (*models.Claim, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	claim, err := s.ClaimRepo.GetForUpdateTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &models.NotFoundError{Entity: "claim", ID: strconv.Itoa(id)}
		}
		return nil, err
	}
	if claim.Cleared {
		return nil, &models.InvalidStateError{Entity: "claim", ID: strconv.Itoa(id),
			Reason: "already cleared"}
	}

	batch, err := s.BatchRepo.GetForUpdateTx(ctx, tx, claim.BatchID)
	if err != nil {
		return nil, err
	}
	batch.OnClaim--
	batch.AvailableStock++
	if err := s.BatchRepo.UpdateCountersTx(ctx, tx, batch); err != nil {
		return nil, err
	}
	if err := s.ClaimRepo.SetClearedTx(ctx, tx, id, true); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Printf("[Claim] Cleared claim %d (batch %d restocked)", id, claim.BatchID)
	return s.GetClaim(ctx, id)
}

// DeleteClaim removes a claim record. An open claim gives its unit back to
// available stock; a cleared one already did, so only the row goes.
func (s *ClaimService) DeleteClaim(ctx context.Context, id int) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	claim, err := s.ClaimRepo.GetForUpdateTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &models.NotFoundError{Entity: "claim", ID: strconv.Itoa(id)}
		}
		return err
	}

	if !claim.Cleared {
		batch, err := s.BatchRepo.GetForUpdateTx(ctx, tx, claim.BatchID)
		if err != nil {
			return err
		}
		batch.OnClaim--
		batch.AvailableStock++
		if err := s.BatchRepo.UpdateCountersTx(ctx, tx, batch); err != nil {
			return err
		}
	}

	if err := s.ClaimRepo.DeleteTx(ctx, tx, id); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Printf("[Claim] Deleted claim %d (cleared=%v)", id, claim.Cleared)
	return nil
}

func (s *ClaimService) GetClaim(ctx context.Context, id int) (*models.Claim, error) {
	claim, err := s.ClaimRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &models.NotFoundError{Entity: "claim", ID: strconv.Itoa(id)}
		}
		return nil, err
	}
	return claim, nil
}

func (s *ClaimService) ListClaims(ctx context.Context) ([]*models.Claim, error) {
	return s.ClaimRepo.List(ctx)
}
