package auditlog

import (
	"context"

	"central360/pkg/models"

	"go.uber.org/zap"
)

type Auditable interface {
	CreateLogView() models.AuditLog
}

type Persister interface {
	PersistLog(ctx context.Context, auditLog models.AuditLog, data interface{}) error
}

type Auditlog struct {
	p      Persister
	logger *zap.Logger
}

// Log records an action against a resource. Failures are logged and never returned:
// the audited write has already happened.
func (a *Auditlog) Log(ctx context.Context, action string, data interface{}, item Auditable) {
	auditLog := item.CreateLogView()
	auditLog.Action = action

	if err := a.p.PersistLog(ctx, auditLog, data); err != nil {
		a.logger.Warn("Unable to create AuditLog entry",
			zap.Int("resource_id", auditLog.ResourceID),
			zap.String("resource_type", auditLog.ResourceType),
			zap.Error(err),
		)
		return
	}

	a.logger.Debug("Created AuditLog entry",
		zap.Int("resource_id", auditLog.ResourceID),
		zap.String("resource_type", auditLog.ResourceType),
		zap.String("action", action),
	)
}

func NewAuditLog(p Persister, logger *zap.Logger) *Auditlog {
	return &Auditlog{p: p, logger: logger}
}
