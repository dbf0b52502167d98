package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/tmhire/tmhire-backend/internal/model"
)

func (s *gormStore) CreateSchedule(ctx context.Context, schedule *model.Schedule) error {
	return s.db.WithContext(ctx).Create(schedule).Error
}

func (s *gormStore) Schedules(ctx context.Context, companyID string) ([]model.Schedule, error) {
	var schedules []model.Schedule
	err := s.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&schedules).Error
	return schedules, err
}

// Schedule loads the full aggregate: the record plus its trip table in
// sequence order.
func (s *gormStore) Schedule(ctx context.Context, companyID, id string) (*model.Schedule, error) {
	var schedule model.Schedule
	err := s.db.WithContext(ctx).
		Preload("Trips", func(db *gorm.DB) *gorm.DB { return db.Order("trip_no ASC") }).
		First(&schedule, "id = ? AND company_id = ?", id, companyID).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

// SaveSchedule persists the schedule record and replaces its trip table
// with the one on the aggregate, in a single transaction.
func (s *gormStore) SaveSchedule(ctx context.Context, schedule *model.Schedule) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Trips").Save(schedule).Error; err != nil {
			return fmt.Errorf("failed to save schedule %s: %w", schedule.ID, err)
		}
		if err := tx.Where("schedule_id = ?", schedule.ID).Delete(&model.Trip{}).Error; err != nil {
			return fmt.Errorf("failed to clear trips for schedule %s: %w", schedule.ID, err)
		}
		if len(schedule.Trips) == 0 {
			return nil
		}
		for i := range schedule.Trips {
			schedule.Trips[i].ID = 0
			schedule.Trips[i].ScheduleID = schedule.ID
		}
		if err := tx.Create(&schedule.Trips).Error; err != nil {
			return fmt.Errorf("failed to insert trips for schedule %s: %w", schedule.ID, err)
		}
		return nil
	})
}

func (s *gormStore) DeleteSchedule(ctx context.Context, companyID, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("schedule_id = ?", id).Delete(&model.Trip{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND company_id = ?", id, companyID).Delete(&model.Schedule{}).Error
	})
}
