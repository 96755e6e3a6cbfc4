package audit

import (
	"context"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Activity types recorded at the register
const (
	ActivitySaleCompleted         = "sale_completed"
	ActivitySessionStarted        = "session_started"
	ActivitySessionEnded          = "session_ended"
	ActivityProductRegistered     = "product_registered"
	ActivityTemporaryProductAdded = "temporary_product_added"
)

// ActivityLog is an append-only record of something that happened at the
// register. Entries are never updated or deleted.
type ActivityLog struct {
	shared.BaseEntity
	ActivityType string          `gorm:"type:varchar(50);not null;index"`
	Description  string          `gorm:"type:text;not null"`
	Reference    string          `gorm:"type:varchar(100);index"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,4)"`
}

// TableName returns the table name for GORM
func (ActivityLog) TableName() string {
	return "activity_logs"
}

// NewActivityLog creates an activity log entry
func NewActivityLog(activityType, description, reference string, amount decimal.Decimal) *ActivityLog {
	return &ActivityLog{
		BaseEntity:   shared.NewBaseEntity(),
		ActivityType: activityType,
		Description:  description,
		Reference:    reference,
		Amount:       amount,
	}
}

// Recorder appends activity entries to durable storage
type Recorder interface {
	Record(ctx context.Context, entry *ActivityLog) error
	FindRecent(ctx context.Context, filter shared.Filter) (*shared.Paginated[ActivityLog], error)
}
