package persistence

import (
	"context"

	"github.com/retailpos/backend/internal/domain/audit"
	"github.com/retailpos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormActivityRepository implements audit.Recorder using GORM.
// Entries are append-only; there is no update or delete path.
type GormActivityRepository struct {
	db *gorm.DB
}

// NewGormActivityRepository creates a new GormActivityRepository
func NewGormActivityRepository(db *gorm.DB) *GormActivityRepository {
	return &GormActivityRepository{db: db}
}

// Record appends an activity entry
func (r *GormActivityRepository) Record(ctx context.Context, entry *audit.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindRecent returns activity entries, newest first
func (r *GormActivityRepository) FindRecent(ctx context.Context, filter shared.Filter) (*shared.Paginated[audit.ActivityLog], error) {
	query := r.db.WithContext(ctx).Model(&audit.ActivityLog{})

	if activityType, ok := filter.Filters["activity_type"]; ok {
		query = query.Where("activity_type = ?", activityType)
	}
	if reference, ok := filter.Filters["reference"]; ok {
		query = query.Where("reference = ?", reference)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	query = query.Order("created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var entries []audit.ActivityLog
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}

	page := shared.NewPaginated(entries, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Ensure GormActivityRepository implements Recorder
var _ audit.Recorder = (*GormActivityRepository)(nil)
