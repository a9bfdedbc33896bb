package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/rajazohaibsaqib/Restaurant-Project-backend/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Pg struct {
	db *gorm.DB
}

func NewPg(connStr string) (*Pg, error) {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Silent,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, err
	}

	return &Pg{db: db}, nil
}

// ListMenuItems returns the current menu in a stable id order. Callers
// treat the result as a per-request snapshot and never cache it.
func (s *Pg) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := s.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}

	return items, nil
}

// RestaurantInfo returns the singleton facts row, or nil when none exists.
func (s *Pg) RestaurantInfo(ctx context.Context) (*models.RestaurantInfo, error) {
	var info models.RestaurantInfo
	err := s.db.WithContext(ctx).First(&info).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch restaurant info: %w", err)
	}

	return &info, nil
}

func (s *Pg) EnabledServices(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if err := s.db.WithContext(ctx).Where("enabled = ?", true).Order("id").Find(&services).Error; err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	return services, nil
}

func (s *Pg) AvailablePlatforms(ctx context.Context) ([]models.Platform, error) {
	var platforms []models.Platform
	if err := s.db.WithContext(ctx).Where("available = ?", true).Order("id").Find(&platforms).Error; err != nil {
		return nil, fmt.Errorf("failed to list platforms: %w", err)
	}

	return platforms, nil
}

func (s *Pg) Policies(ctx context.Context) ([]models.Policy, error) {
	var policies []models.Policy
	if err := s.db.WithContext(ctx).Order("id").Find(&policies).Error; err != nil {
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}

	return policies, nil
}

func (s *Pg) StaffMembers(ctx context.Context) ([]models.Staff, error) {
	var staff []models.Staff
	if err := s.db.WithContext(ctx).Order("id").Find(&staff).Error; err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}

	return staff, nil
}

// LatestOrder returns the user's most recent order by id, or nil when the
// user has never ordered.
func (s *Pg) LatestOrder(ctx context.Context, userID uint64) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest order: %w", err)
	}

	return &order, nil
}

// CreateOrder writes the order header and all its lines in one transaction.
// A failure on any row aborts the whole order.
func (s *Pg) CreateOrder(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	if len(items) == 0 {
		return fmt.Errorf("no order items provided")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for i := range items {
			items[i].OrderID = order.ID
		}

		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}

		order.Items = items

		return nil
	})
}

func (s *Pg) ConfirmOrder(ctx context.Context, orderID uint64) error {
	res := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", models.OrderStatusConfirmed)
	if res.Error != nil {
		return fmt.Errorf("failed to confirm order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %d not found", orderID)
	}

	return nil
}

func (s *Pg) OrderHistory(ctx context.Context, userID uint64) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

// FindOrCreateUser matches an existing user by contact or email before
// creating a new row, so repeated signups stay idempotent.
func (s *Pg) FindOrCreateUser(ctx context.Context, user *models.User) (created bool, err error) {
	var existing models.User
	findErr := s.db.WithContext(ctx).
		Where("contact = ? OR email = ?", user.Contact, user.Email).
		First(&existing).Error
	if findErr == nil {
		*user = existing
		return false, nil
	}
	if !errors.Is(findErr, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to look up user: %w", findErr)
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return false, fmt.Errorf("failed to create user: %w", err)
	}

	return true, nil
}

func (s *Pg) SaveChat(ctx context.Context, userID uint64, question, answer string) error {
	entry := models.ChatHistory{
		UserID:   userID,
		Question: question,
		Answer:   answer,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to save chat entry: %w", err)
	}

	return nil
}

func (s *Pg) ChatHistoryFor(ctx context.Context, userID uint64) ([]models.ChatHistory, error) {
	var history []models.ChatHistory
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp ASC").
		Find(&history).Error; err != nil {
		return nil, fmt.Errorf("failed to list chat history: %w", err)
	}

	return history, nil
}
