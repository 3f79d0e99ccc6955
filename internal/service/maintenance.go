package service

import (
	"context"
	"time"

	"linguista/internal/repository"

	"go.uber.org/zap"
)

// MaintenanceService purges expired authentication data
type MaintenanceService struct {
	tokens        repository.TokenRepository
	confirmations repository.ConfirmationRepository
	logger        *zap.Logger
	now           func() time.Time
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(
	tokens repository.TokenRepository,
	confirmations repository.ConfirmationRepository,
	logger *zap.Logger,
) *MaintenanceService {
	return &MaintenanceService{
		tokens:        tokens,
		confirmations: confirmations,
		logger:        logger,
		now:           time.Now,
	}
}

// PurgeExpired removes expired tokens and stale email confirmations
func (s *MaintenanceService) PurgeExpired(ctx context.Context) error {
	now := s.now()

	s.logger.Info("Starting cleanup of expired auth data")

	tokens, err := s.tokens.DeleteExpired(ctx, now)
	if err != nil {
		s.logger.Error("Failed to purge expired tokens", zap.Error(err))
		return err
	}

	confirmations, err := s.confirmations.DeleteExpired(ctx, now)
	if err != nil {
		s.logger.Error("Failed to purge expired confirmations", zap.Error(err))
		return err
	}

	s.logger.Info("Cleanup completed successfully",
		zap.Int64("tokens", tokens),
		zap.Int64("confirmations", confirmations),
	)
	return nil
}

// Run purges once and then every interval until ctx is done
func (s *MaintenanceService) Run(ctx context.Context, interval time.Duration) {
	if err := s.PurgeExpired(ctx); err != nil {
		s.logger.Error("Failed to run initial cleanup", zap.Error(err))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Cleanup job stopped")
			return
		case <-ticker.C:
			s.logger.Info("Running scheduled cleanup")
			if err := s.PurgeExpired(ctx); err != nil {
				s.logger.Error("Failed to run scheduled cleanup", zap.Error(err))
			}
		}
	}
}
