package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/rajazohaibsaqib/Restaurant-Project-backend/models"
	"gorm.io/gorm"
)

// LoadCorpus reads every corpus row and the build stamp in one pass. The
// caller validates the stamp against the rows before serving.
func (s *Pg) LoadCorpus(ctx context.Context) ([]models.QAEntry, *models.QACorpusMeta, error) {
	var entries []models.QAEntry
	if err := s.db.WithContext(ctx).Order("id").Find(&entries).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load qa corpus: %w", err)
	}

	var meta models.QACorpusMeta
	err := s.db.WithContext(ctx).Order("id DESC").First(&meta).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entries, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load corpus meta: %w", err)
	}

	return entries, &meta, nil
}

// ReplaceCorpus swaps the whole corpus and its build stamp atomically, so
// readers never observe rows from two different builds.
func (s *Pg) ReplaceCorpus(ctx context.Context, meta models.QACorpusMeta, entries []models.QAEntry) error {
	if len(entries) == 0 {
		return fmt.Errorf("refusing to write an empty corpus")
	}

	meta.Rows = len(entries)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.QAEntry{}).Error; err != nil {
			return fmt.Errorf("failed to clear qa corpus: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&models.QACorpusMeta{}).Error; err != nil {
			return fmt.Errorf("failed to clear corpus meta: %w", err)
		}

		if err := tx.CreateInBatches(&entries, 200).Error; err != nil {
			return fmt.Errorf("failed to write qa corpus: %w", err)
		}
		if err := tx.Create(&meta).Error; err != nil {
			return fmt.Errorf("failed to write corpus meta: %w", err)
		}

		return nil
	})
}
