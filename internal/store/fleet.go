package store

import (
	"context"
	"fmt"

	"github.com/tmhire/tmhire-backend/internal/model"
)

func (s *gormStore) CreateClient(ctx context.Context, client *model.Client) error {
	return s.db.WithContext(ctx).Create(client).Error
}

func (s *gormStore) Clients(ctx context.Context, companyID string) ([]model.Client, error) {
	var clients []model.Client
	err := s.db.WithContext(ctx).Where("company_id = ?", companyID).Order("name ASC").Find(&clients).Error
	return clients, err
}

func (s *gormStore) Client(ctx context.Context, companyID, id string) (*model.Client, error) {
	var client model.Client
	if err := s.db.WithContext(ctx).First(&client, "id = ? AND company_id = ?", id, companyID).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (s *gormStore) SaveClient(ctx context.Context, client *model.Client) error {
	return s.db.WithContext(ctx).Save(client).Error
}

func (s *gormStore) DeleteClient(ctx context.Context, companyID, id string) error {
	return s.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		Delete(&model.Client{}).Error
}

func (s *gormStore) CreatePlant(ctx context.Context, plant *model.Plant) error {
	return s.db.WithContext(ctx).Create(plant).Error
}

func (s *gormStore) Plants(ctx context.Context, companyID string) ([]model.Plant, error) {
	var plants []model.Plant
	err := s.db.WithContext(ctx).Where("company_id = ?", companyID).Order("name ASC").Find(&plants).Error
	return plants, err
}

func (s *gormStore) Plant(ctx context.Context, companyID, id string) (*model.Plant, error) {
	var plant model.Plant
	if err := s.db.WithContext(ctx).First(&plant, "id = ? AND company_id = ?", id, companyID).Error; err != nil {
		return nil, err
	}
	return &plant, nil
}

func (s *gormStore) SavePlant(ctx context.Context, plant *model.Plant) error {
	return s.db.WithContext(ctx).Save(plant).Error
}

func (s *gormStore) DeletePlant(ctx context.Context, companyID, id string) error {
	return s.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		Delete(&model.Plant{}).Error
}

func (s *gormStore) CreateTM(ctx context.Context, tm *model.TransitMixer) error {
	return s.db.WithContext(ctx).Create(tm).Error
}

func (s *gormStore) TMs(ctx context.Context, companyID string) ([]model.TransitMixer, error) {
	var tms []model.TransitMixer
	err := s.db.WithContext(ctx).Where("company_id = ?", companyID).Order("identifier ASC").Find(&tms).Error
	return tms, err
}

func (s *gormStore) TM(ctx context.Context, companyID, id string) (*model.TransitMixer, error) {
	var tm model.TransitMixer
	if err := s.db.WithContext(ctx).First(&tm, "id = ? AND company_id = ?", id, companyID).Error; err != nil {
		return nil, err
	}
	return &tm, nil
}

func (s *gormStore) TMsByIDs(ctx context.Context, companyID string, ids []string) ([]model.TransitMixer, error) {
	var tms []model.TransitMixer
	err := s.db.WithContext(ctx).
		Where("company_id = ? AND id IN ?", companyID, ids).
		Order("identifier ASC").
		Find(&tms).Error
	return tms, err
}

func (s *gormStore) SaveTM(ctx context.Context, tm *model.TransitMixer) error {
	return s.db.WithContext(ctx).Save(tm).Error
}

func (s *gormStore) DeleteTM(ctx context.Context, companyID, id string) error {
	return s.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		Delete(&model.TransitMixer{}).Error
}

// AverageTMCapacity returns the fleet's mean capacity, or zero when the
// company has no vehicles registered.
func (s *gormStore) AverageTMCapacity(ctx context.Context, companyID string) (float64, error) {
	var avg float64
	err := s.db.WithContext(ctx).
		Model(&model.TransitMixer{}).
		Where("company_id = ?", companyID).
		Select("COALESCE(AVG(capacity), 0)").
		Scan(&avg).Error
	if err != nil {
		return 0, fmt.Errorf("failed to compute average capacity: %w", err)
	}
	return avg, nil
}
