package services

import (
	"context"
	"errors"
	"strconv"

	"mobileshop-backend/internal/models"
	"mobileshop-backend/internal/repositories"

	"github.com/jackc/pgx/v5"
)

// CatalogService manages products and vendors.
type CatalogService struct {
	ProductRepo *repositories.ProductRepository
	VendorRepo  *repositories.VendorRepository
}

func NewCatalogService(productRepo *repositories.ProductRepository, vendorRepo *repositories.VendorRepository) *CatalogService {
	return &CatalogService{
		ProductRepo: productRepo,
		VendorRepo:  vendorRepo,
	}
}

func (s *CatalogService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	if req.Name == "" {
		return nil, errors.New("product name is required")
	}
	product := &models.Product{Name: req.Name}
	if err := s.ProductRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	product, err := s.ProductRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &models.NotFoundError{Entity: "product", ID: strconv.Itoa(id)}
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	return s.ProductRepo.List(ctx)
}

func (s *CatalogService) CreateVendor(ctx context.Context, req *models.CreateVendorRequest) (*models.Vendor, error) {
	if req.Name == "" {
		return nil, errors.New("vendor name is required")
	}
	vendor := &models.Vendor{Name: req.Name}
	if err := s.VendorRepo.Create(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

func (s *CatalogService) GetVendor(ctx context.Context, id int) (*models.Vendor, error) {
	vendor, err := s.VendorRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &models.NotFoundError{Entity: "vendor", ID: strconv.Itoa(id)}
		}
		return nil, err
	}
	return vendor, nil
}

func (s *CatalogService) ListVendors(ctx context.Context) ([]*models.Vendor, error) {
	return s.VendorRepo.List(ctx)
}
