package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"

	"mobileshop-backend/internal/models"
	"mobileshop-backend/internal/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CreditService owns deferred-payment sales. A pending credit holds its
// units in the on_credit bucket; clearing it moves them to sold. Credits
// never run profit distribution.
type CreditService struct {
	DB         *pgxpool.Pool
	CreditRepo *repositories.CreditRepository
	BatchRepo  *repositories.StockBatchRepository
	UnitRepo   *repositories.UnitRepository
}

func NewCreditService(db *pgxpool.Pool, creditRepo *repositories.CreditRepository, batchRepo *repositories.StockBatchRepository, unitRepo *repositories.UnitRepository) *CreditService {
	return &CreditService{
		DB:         db,
		CreditRepo: creditRepo,
		BatchRepo:  batchRepo,
		UnitRepo:   unitRepo,
	}
}

func (s *CreditService) CreateCredit(ctx context.Context, req *models.CreateCreditRequest) (*models.Credit, error) {
	if len(req.Items) == 0 {
		return nil, errors.New("credit must have at least one line item")
	}
	seen := make(map[string]bool, len(req.Items))
	for _, item := range req.Items {
		if item.Serial == "" {
			return nil, errors.New("credit item serial cannot be empty")
		}
		if item.Price < 0 {
			return nil, errors.New("credit item price cannot be negative")
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
	}

	credit := &models.Credit{
		CustomerName:  req.CustomerName,
		PaymentStatus: models.CreditStatusPending,
		Quantity:      len(req.Items),
	}
	if err := s.CreditRepo.CreateTx(ctx, tx, credit); err != nil {
		return nil, err
	}
	for i, item := range req.Items {
		line := &models.CreditItem{
			CreditID: credit.ID,
			UnitID:   unitIDs[i],
			BatchID:  item.BatchID,
			Price:    item.Price,
		}
		if err := s.CreditRepo.InsertItemTx(ctx, tx, line); err != nil {
			return nil, err
		}
	}

	for _, id := range batchIDs {
		batch := batches[id]
		batch.AvailableStock -= needed[id]
		batch.OnCredit += needed[id]
		if err := s.BatchRepo.UpdateCountersTx(ctx, tx, batch); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Printf("[Credit] Created credit %d: %d units for %q", credit.ID, credit.Quantity, credit.CustomerName)
	return s.CreditRepo.Get(ctx, credit.ID)
}

// AddItem appends a unit to a pending credit. Cleared credits are closed
// books and reject new items.
func (s *CreditService) AddItem(ctx context.Context, id int, item *models.CreditLineInput) (*models.Credit, error) {
	if item.Serial == "" {
		return nil, errors.New("credit item serial cannot be empty")
	}
	if item.Price < 0 {
		return nil, errors.New("credit item price cannot be negative")
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	credit, err := s.CreditRepo.GetForUpdateTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &models.NotFoundError{Entity: "credit", ID: strconv.Itoa(id)}
		}
		return nil, err
	}
	if credit.PaymentStatus == models.CreditStatusCleared {
		return nil, &models.InvalidStateError{Entity: "credit", ID: strconv.Itoa(id),
			Reason: "already cleared"}
	}

	batch, err := s.BatchRepo.GetForUpdateTx(ctx, tx, item.BatchID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &models.NotFoundError{Entity: "batch", ID: strconv.Itoa(item.BatchID)}
		}
		return nil, err
	}
	if batch.AvailableStock < 1 {
		return nil, &models.InsufficientStockError{BatchID: item.BatchID, Available: batch.AvailableStock}
	}

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

	line := &models.CreditItem{
		CreditID: id,
		UnitID:   unit.ID,
		BatchID:  item.BatchID,
		Price:    item.Price,
	}
	if err := s.CreditRepo.InsertItemTx(ctx, tx, line); err != nil {
		return nil, err
	}
	if err := s.CreditRepo.AddQuantityTx(ctx, tx, id, 1); err != nil {
		return nil, err
	}

	batch.AvailableStock--
	batch.OnCredit++
	if err := s.BatchRepo.UpdateCountersTx(ctx, tx, batch); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Printf("[Credit] Added unit %q to credit %d", item.Serial, id)
	return s.CreditRepo.Get(ctx, id)
}

// UpdateStatus transitions between PENDING and CLEARED, shifting every
// item's unit between the on_credit and sold buckets. Setting the current
// status again is rejected.
func (s *CreditService) UpdateStatus(ctx context.Context, id int, newStatus string) (*models.Credit, error) {
	if newStatus != models.CreditStatusPending && newStatus != models.CreditStatusCleared {
		return nil, errors.New("payment status must be PENDING or CLEARED")
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	credit, err := s.CreditRepo.GetForUpdateTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &models.NotFoundError{Entity: "credit", ID: strconv.Itoa(id)}
		}
		return nil, err
	}
	if credit.PaymentStatus == newStatus {
		return nil, &models.InvalidStateError{Entity: "credit", ID: strconv.Itoa(id),
			Reason: "already " + newStatus}
	}

	items, err := s.CreditRepo.ItemsTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	moved := make(map[int]int)
	for _, item := range items {
		moved[item.BatchID]++
	}
	batchIDs := make([]int, 0, len(moved))
	for bid := range moved {
		batchIDs = append(batchIDs, bid)
	}
	sort.Ints(batchIDs)

	for _, bid := range batchIDs {
		batch, err := s.BatchRepo.GetForUpdateTx(ctx, tx, bid)
		if err != nil {
			return nil, err
		}
		if newStatus == models.CreditStatusCleared {
			batch.OnCredit -= moved[bid]
			batch.Sold += moved[bid]
		} else {
			batch.Sold -= moved[bid]
			batch.OnCredit += moved[bid]
		}
		if err := s.BatchRepo.UpdateCountersTx(ctx, tx, batch); err != nil {
			return nil, err
		}
	}

	if err := s.CreditRepo.SetStatusTx(ctx, tx, id, newStatus); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Printf("[Credit] Credit %d status %s -> %s (%d units)", id, credit.PaymentStatus, newStatus, len(items))
	return s.CreditRepo.Get(ctx, id)
}

// DeleteCredit removes a credit and releases or un-sells its units
// depending on the current status.
func (s *CreditService) DeleteCredit(ctx context.Context, id int) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	credit, err := s.CreditRepo.GetForUpdateTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &models.NotFoundError{Entity: "credit", ID: strconv.Itoa(id)}
		}
		return err
	}

	items, err := s.CreditRepo.ItemsTx(ctx, tx, id)
	if err != nil {
		return err
	}
	released := make(map[int]int)
	for _, item := range items {
		released[item.BatchID]++
	}
	batchIDs := make([]int, 0, len(released))
	for bid := range released {
		batchIDs = append(batchIDs, bid)
	}
	sort.Ints(batchIDs)

	for _, bid := range batchIDs {
		batch, err := s.BatchRepo.GetForUpdateTx(ctx, tx, bid)
		if err != nil {
			return err
		}
		if credit.PaymentStatus == models.CreditStatusCleared {
			batch.Sold -= released[bid]
		} else {
			batch.OnCredit -= released[bid]
		}
		batch.AvailableStock += released[bid]
		if err := s.BatchRepo.UpdateCountersTx(ctx, tx, batch); err != nil {
			return err
		}
	}

	if err := s.CreditRepo.DeleteTx(ctx, tx, id); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Printf("[Credit] Deleted credit %d (%s, %d units)", id, credit.PaymentStatus, len(items))
	return nil
}

func (s *CreditService) GetCredit(ctx context.Context, id int) (*models.Credit, error) {
	credit, err := s.CreditRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &models.NotFoundError{Entity: "credit", ID: strconv.Itoa(id)}
		}
		return nil, err
	}
	return credit, nil
}

func (s *CreditService) ListCredits(ctx context.Context) ([]*models.Credit, error) {
	return s.CreditRepo.List(ctx)
}
