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

// StockService owns intake and the per-batch counter state.
type StockService struct {
	DB          *pgxpool.Pool
	BatchRepo   *repositories.StockBatchRepository
	UnitRepo    *repositories.UnitRepository
	ProductRepo *repositories.ProductRepository
	VendorRepo  *repositories.VendorRepository
}

func NewStockService(db *pgxpool.Pool, batchRepo *repositories.StockBatchRepository, unitRepo *repositories.UnitRepository, productRepo *repositories.ProductRepository, vendorRepo *repositories.VendorRepository) *StockService {
	return &StockService{
		DB:          db,
		BatchRepo:   batchRepo,
		UnitRepo:    unitRepo,
		ProductRepo: productRepo,
		VendorRepo:  vendorRepo,
	}
}

// Intake creates a batch and registers each serial as a member unit.
// A serial already bound to a batch, sold, on credit, or under an open
// claim rejects the whole intake.
func (s *StockService) Intake(ctx context.Context, req *models.IntakeRequest) (*models.StockBatch, error) {
	if len(req.UnitSerials) == 0 {
		return nil, errors.New("at least one unit serial is required")
	}
	if req.PurchasingPrice < 0 {
		return nil, errors.New("purchasing price cannot be negative")
	}
	seen := make(map[string]bool, len(req.UnitSerials))
	for _, serial := range req.UnitSerials {
		if serial == "" {
			return nil, errors.New("unit serial cannot be empty")
		}
		if seen[serial] {
			return nil, &models.DuplicateUnitError{Serial: serial, Reason: "listed more than once"}
		}
		seen[serial] = true
	}

	if _, err := s.ProductRepo.Get(ctx, req.ProductID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &models.NotFoundError{Entity: "product", ID: strconv.Itoa(req.ProductID)}
		}
		return nil, err
	}
	if _, err := s.VendorRepo.Get(ctx, req.VendorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &models.NotFoundError{Entity: "vendor", ID: strconv.Itoa(req.VendorID)}
		}
		return nil, err
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	batch := &models.StockBatch{
		ProductID:       req.ProductID,
		VendorID:        req.VendorID,
		PurchasingPrice: req.PurchasingPrice,
		AvailableStock:  len(req.UnitSerials),
	}
	if err := s.BatchRepo.CreateTx(ctx, tx, batch); err != nil {
		return nil, err
	}

	for _, serial := range req.UnitSerials {
		unit, err := s.UnitRepo.GetOrCreateTx(ctx, tx, serial)
		if err != nil {
			return nil, err
		}
		if unit.BatchID != nil {
			return nil, &models.DuplicateUnitError{Serial: serial, Reason: "already registered to a batch"}
		}
		committed, err := s.UnitRepo.CommitmentTx(ctx, tx, unit.ID)
		if err != nil {
			return nil, err
		}
		if committed != "" {
			return nil, &models.DuplicateUnitError{Serial: serial, Reason: committed}
		}
		if err := s.UnitRepo.AssignBatchTx(ctx, tx, unit.ID, batch.ID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Printf("[Stock] Intake: batch %d, %d units of product %d from vendor %d",
		batch.ID, len(req.UnitSerials), req.ProductID, req.VendorID)
	return s.GetBatch(ctx, batch.ID)
}

// AdjustBatch is the bulk correction entry point. It rewrites purchasing
// price and available stock without recomputing historical profit.
func (s *StockService) AdjustBatch(ctx context.Context, id int, req *models.AdjustBatchRequest) (*models.StockBatch, error) {
	if req.PurchasingPrice < 0 {
		return nil, errors.New("purchasing price cannot be negative")
	}
	if req.AvailableStock < 0 {
		return nil, errors.New("available stock cannot be negative")
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := s.BatchRepo.GetForUpdateTx(ctx, tx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &models.NotFoundError{Entity: "batch", ID: strconv.Itoa(id)}
		}
		return nil, err
	}
	if err := s.BatchRepo.AdjustTx(ctx, tx, id, req.PurchasingPrice, req.AvailableStock); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Printf("[Stock] Adjusted batch %d: price=%d available=%d", id, req.PurchasingPrice, req.AvailableStock)
	return s.GetBatch(ctx, id)
}

func (s *StockService) GetBatch(ctx context.Context, id int) (*models.StockBatch, error) {
	batch, err := s.BatchRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &models.NotFoundError{Entity: "batch", ID: strconv.Itoa(id)}
		}
		return nil, err
	}
	vendor, err := s.VendorRepo.Get(ctx, batch.VendorID)
	if err != nil {
		return nil, err
	}
	batch.Vendor = vendor
	serials, err := s.BatchRepo.MemberSerials(ctx, batch.ID)
	if err != nil {
		return nil, err
	}
	batch.MemberSerials = serials
	return batch, nil
}

func (s *StockService) ListBatches(ctx context.Context) ([]*models.StockBatch, error) {
	batches, err := s.BatchRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range batches {
		serials, err := s.BatchRepo.MemberSerials(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		b.MemberSerials = serials
	}
	return batches, nil
}

// QueryAvailable lists the serials of a product that are genuinely
// sellable: member units not already sold, on credit, or under an open
// claim.
func (s *StockService) QueryAvailable(ctx context.Context, productID int) ([]string, error) {
	if _, err := s.ProductRepo.Get(ctx, productID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &models.NotFoundError{Entity: "product", ID: strconv.Itoa(productID)}
		}
		return nil, err
	}
	serials, err := s.BatchRepo.AvailableSerialsByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if serials == nil {
		serials = []string{}
	}
	return serials, nil
}

// LookupSerial answers the IMEI search: where is this unit now.
func (s *StockService) LookupSerial(ctx context.Context, serial string) (*models.UnitStatus, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	unit, err := s.UnitRepo.GetBySerialTx(ctx, tx, serial)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &models.NotFoundError{Entity: "unit", ID: serial}
		}
		return nil, err
	}

	status := "available"
	if unit.BatchID == nil {
		status = "unassigned"
	} else {
		committed, err := s.UnitRepo.CommitmentTx(ctx, tx, unit.ID)
		if err != nil {
			return nil, err
		}
		if committed != "" {
			status = committed
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &models.UnitStatus{Unit: unit, Status: status}, nil
}

func (s *StockService) TotalAsset(ctx context.Context) (int64, error) {
	return s.BatchRepo.TotalAsset(ctx)
}
