package http

import (
	"context"

	"comissoes/internal/amqp"
	applog "comissoes/internal/log"
)

// publishEvent announces a record mutation on the broker. Publishing is
// best effort: a broker outage never fails the web request.
func (s *Server) publishEvent(ctx context.Context, category, action string, recordID, ownerID int64, commissionCents int64) {
	if s.events == nil {
		return
	}
	event := amqp.NewRecordEvent(category, action, recordID, ownerID, commissionCents)
	if err := s.events.PublishRecordEvent(ctx, event); err != nil {
		applog.FromContext(ctx).Warn("Failed to publish record event",
			"category", category,
			"action", action,
			"record_id", recordID,
			"error", err)
	}
}
