package repository

import (
	"context"

	"school_reports_backend/internal/model"

	"gorm.io/gorm"
)

type ArchiveRepository struct {
	DB *gorm.DB
}

func NewArchiveRepository(db *gorm.DB) *ArchiveRepository {
	return &ArchiveRepository{DB: db}
}

func (r *ArchiveRepository) Create(ctx context.Context, archive *model.ReportArchive) error {
	return r.DB.WithContext(ctx).Create(archive).Error
}

// ListByReference returns the archived documents of one kind and reference
// (student or course id), newest first.
func (r *ArchiveRepository) ListByReference(ctx context.Context, kind, reference string) ([]model.ReportArchive, error) {
	var archives []model.ReportArchive
	err := r.DB.WithContext(ctx).
		Where("kind = ? AND reference = ?", kind, reference).
		Order("created_at DESC").
		Find(&archives).Error
	return archives, err
}
