package audit

import (
	"context"
	"time"

	"github.com/retailpos/backend/internal/domain/audit"
	"github.com/retailpos/backend/internal/domain/shared"
)

// ActivityEntryResponse is the API view of an activity log entry
type ActivityEntryResponse struct {
	ActivityType string    `json:"activityType"`
	Description  string    `json:"description"`
	Reference    string    `json:"reference,omitempty"`
	Amount       string    `json:"amount,omitempty"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// ActivityListResponse is a paginated activity listing
type ActivityListResponse struct {
	Items    []ActivityEntryResponse `json:"items"`
	Total    int64                   `json:"total"`
	Page     int                     `json:"page"`
	PageSize int                     `json:"pageSize"`
}

// ActivityService provides read access to the activity log
type ActivityService struct {
	recorder audit.Recorder
}

// NewActivityService creates a new ActivityService
func NewActivityService(recorder audit.Recorder) *ActivityService {
	return &ActivityService{recorder: recorder}
}

// List retrieves activity entries, newest first
func (s *ActivityService) List(ctx context.Context, filter shared.Filter) (*ActivityListResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}

	page, err := s.recorder.FindRecent(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ActivityEntryResponse, 0, len(page.Items))
	for _, entry := range page.Items {
		item := ActivityEntryResponse{
			ActivityType: entry.ActivityType,
			Description:  entry.Description,
			Reference:    entry.Reference,
			OccurredAt:   entry.CreatedAt,
		}
		if !entry.Amount.IsZero() {
			item.Amount = entry.Amount.StringFixed(2)
		}
		items = append(items, item)
	}

	return &ActivityListResponse{
		Items:    items,
		Total:    page.Total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}
