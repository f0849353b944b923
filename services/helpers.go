package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Dosada05/magic-tournament/metrics"
	"github.com/Dosada05/magic-tournament/repositories"
)

// EventPublisher доставляет события турнира подписчикам (WebSocket-комнатам).
// Вызывается только после успешного коммита.
type EventPublisher interface {
	PublishTournamentEvent(tournamentID int, eventType string, payload interface{})
}

type noopPublisher struct{}

func (noopPublisher) PublishTournamentEvent(int, string, interface{}) {}

func publisherOrNoop(p EventPublisher) EventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}

// runInTx выполняет fn в транзакции и приводит ошибку к одному из видов.
func runInTx(ctx context.Context, tx repositories.Transactor, logger *slog.Logger, operation string, fn func(exec repositories.SQLExecutor) error) error {
	if err := tx.WithinTx(ctx, fn); err != nil {
		err = classifyError(err)
		metrics.RollbacksTotal.WithLabelValues(operation).Inc()
		level := slog.LevelWarn
		if errors.Is(err, ErrPersistence) {
			level = slog.LevelError
		}
		logger.Log(ctx, level, "operation rolled back", slog.String("operation", operation), slog.Any("error", err))
		return err
	}
	return nil
}
