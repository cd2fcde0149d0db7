package repositories

import (
	"context"

	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
)

// EventLogRepository stores the business events handed to the posting
// service, in arrival order, so the ledger can be rebuilt from them.
type EventLogRepository interface {
	AppendEvent(ctx context.Context, event domain.PostedEvent) error
	ListEvents(ctx context.Context, tenantID string) ([]domain.PostedEvent, error)
}
