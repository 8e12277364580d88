package services

import (
	"context"
	"errors"
	"log"

	"mobileshop-backend/internal/cache"
	"mobileshop-backend/internal/models"
	"mobileshop-backend/internal/repositories"
)

// SettingService serves the singleton revenue policy and company balances.
// The policy is read on every sale, so reads go through the cache.
type SettingService struct {
	SettingRepo *repositories.SettingRepository
	CompanyRepo *repositories.CompanyProfileRepository
}

func NewSettingService(settingRepo *repositories.SettingRepository, companyRepo *repositories.CompanyProfileRepository) *SettingService {
	return &SettingService{
		SettingRepo: settingRepo,
		CompanyRepo: companyRepo,
	}
}

func (s *SettingService) GetSetting(ctx context.Context) (*models.Setting, error) {
	if cached, ok := cache.GetCachedSetting(ctx); ok {
		return cached, nil
	}
	setting, err := s.SettingRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	cache.CacheSetting(ctx, setting)
	return setting, nil
}

func (s *SettingService) UpdateSetting(ctx context.Context, req *models.UpdateSettingRequest) (*models.Setting, error) {
	if req.OwnerShare < 0 || req.OwnerShare > 100 {
		return nil, errors.New("owner share must be between 0 and 100")
	}
	if req.ExpenseShare < 0 || req.ExpenseShare > 100 {
		return nil, errors.New("expense share must be between 0 and 100")
	}

	setting, err := s.SettingRepo.Update(ctx, req.OwnerShare, req.ExpenseShare)
	if err != nil {
		return nil, err
	}
	cache.InvalidateSetting(ctx)
	log.Printf("[Setting] Updated policy: owner_share=%d expense_share=%d", setting.OwnerShare, setting.ExpenseShare)
	return setting, nil
}

func (s *SettingService) GetCompanyProfile(ctx context.Context) (*models.CompanyProfile, error) {
	return s.CompanyRepo.Get(ctx)
}
