// Package localstore is the browser-localStorage stand-in: an embedded
// sqlite database holding the session roster, the current user and the last
// product snapshot. It is read once at startup and written through on every
// mutation.
package localstore

import (
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/wingscafe/inventory_client/internal/apiclient"
	"github.com/wingscafe/inventory_client/internal/models"
)

const currentUserKey = "currentUser"

type Store struct {
	db *gorm.DB
}

func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	if err := db.AutoMigrate(&models.RosterUser{}, &models.Setting{}, &models.CachedProduct{}); err != nil {
		return nil, fmt.Errorf("migrate local store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// RosterUsers returns the session roster in signup order.
func (s *Store) RosterUsers() ([]models.RosterUser, error) {
	var users []models.RosterUser
	if err := s.db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	return users, nil
}

// AppendRosterUser adds an entry unconditionally. Duplicate usernames are
// allowed; login resolves them by roster order.
func (s *Store) AppendRosterUser(username, password string) (models.RosterUser, error) {
	user := models.RosterUser{Username: username, Password: password}
	if err := s.db.Create(&user).Error; err != nil {
		return models.RosterUser{}, fmt.Errorf("append roster user: %w", err)
	}
	return user, nil
}

// CurrentUser returns the persisted logged-in username, or "" when logged out.
func (s *Store) CurrentUser() (string, error) {
	var setting models.Setting
	err := s.db.First(&setting, "key = ?", currentUserKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load current user: %w", err)
	}
	return setting.Value, nil
}

func (s *Store) SetCurrentUser(username string) error {
	setting := models.Setting{Key: currentUserKey, Value: username}
	err := s.db.Save(&setting).Error
	if err != nil {
		return fmt.Errorf("persist current user: %w", err)
	}
	return nil
}

func (s *Store) ClearCurrentUser() error {
	err := s.db.Delete(&models.Setting{}, "key = ?", currentUserKey).Error
	if err != nil {
		return fmt.Errorf("clear current user: %w", err)
	}
	return nil
}

// SaveProducts replaces the cached snapshot with the given fetch result.
func (s *Store) SaveProducts(products []apiclient.Product) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.CachedProduct{}).Error; err != nil {
			return fmt.Errorf("clear product cache: %w", err)
		}
		for _, p := range products {
			cached := models.CachedProduct{
				ProductID:    p.ProductID,
				Name:         p.Name,
				Description:  p.Description,
				CategoryName: p.CategoryName,
				Price:        p.Price.Float64(),
				Quantity:     p.Quantity,
				Image:        p.Image,
			}
			if err := tx.Save(&cached).Error; err != nil {
				return fmt.Errorf("cache product %d: %w", p.ProductID, err)
			}
		}
		return nil
	})
}

// CachedProducts returns the last snapshot, possibly stale.
func (s *Store) CachedProducts() ([]models.CachedProduct, error) {
	var products []models.CachedProduct
	if err := s.db.Order("product_id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("load product cache: %w", err)
	}
	return products, nil
}
