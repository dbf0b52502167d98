package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/tmhire/tmhire-backend/internal/model"
)

// Store defines the database operations the service layer depends on.
// Everything except user lookup is scoped to a company.
type Store interface {
	DB() *gorm.DB

	CreateCompany(ctx context.Context, company *model.Company) error
	CreateUser(ctx context.Context, user *model.User) error
	UserByEmail(ctx context.Context, email string) (*model.User, error)

	CreateClient(ctx context.Context, client *model.Client) error
	Clients(ctx context.Context, companyID string) ([]model.Client, error)
	Client(ctx context.Context, companyID, id string) (*model.Client, error)
	SaveClient(ctx context.Context, client *model.Client) error
	DeleteClient(ctx context.Context, companyID, id string) error

	CreatePlant(ctx context.Context, plant *model.Plant) error
	Plants(ctx context.Context, companyID string) ([]model.Plant, error)
	Plant(ctx context.Context, companyID, id string) (*model.Plant, error)
	SavePlant(ctx context.Context, plant *model.Plant) error
	DeletePlant(ctx context.Context, companyID, id string) error

	CreateTM(ctx context.Context, tm *model.TransitMixer) error
	TMs(ctx context.Context, companyID string) ([]model.TransitMixer, error)
	TM(ctx context.Context, companyID, id string) (*model.TransitMixer, error)
	TMsByIDs(ctx context.Context, companyID string, ids []string) ([]model.TransitMixer, error)
	SaveTM(ctx context.Context, tm *model.TransitMixer) error
	DeleteTM(ctx context.Context, companyID, id string) error
	AverageTMCapacity(ctx context.Context, companyID string) (float64, error)

	CreateSchedule(ctx context.Context, schedule *model.Schedule) error
	Schedules(ctx context.Context, companyID string) ([]model.Schedule, error)
	Schedule(ctx context.Context, companyID, id string) (*model.Schedule, error)
	SaveSchedule(ctx context.Context, schedule *model.Schedule) error
	DeleteSchedule(ctx context.Context, companyID, id string) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying handle for components that need raw access
// (calendar, notification worker).
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

func (s *gormStore) CreateCompany(ctx context.Context, company *model.Company) error {
	return s.db.WithContext(ctx).Create(company).Error
}

func (s *gormStore) CreateUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *gormStore) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
