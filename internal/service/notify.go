package service

import (
	"context"

	"github.com/Fahad602/Dash-KanBan/internal/domain"
)

// ChangeListener is told about every committed board mutation
type ChangeListener interface {
	BoardChanged(ctx context.Context, change domain.BoardChange)
}

// ChangePublisher forwards board changes to connected clients
type ChangePublisher interface {
	PublishChange(ctx context.Context, change domain.BoardChange)
}

func notify(ctx context.Context, l ChangeListener, change domain.BoardChange) {
	if l == nil {
		return
	}
	l.BoardChanged(ctx, change)
}
