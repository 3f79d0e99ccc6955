package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"linguista/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMaintenanceService_PurgeExpired(t *testing.T) {
	tests := []struct {
		name          string
		tokensErr     error
		expectedError bool
	}{
		{name: "successful cleanup"},
		{name: "token purge failure", tokensErr: errors.New("database error"), expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := new(testutil.MockTokenRepository)
			confirmations := new(testutil.MockConfirmationRepository)
			s := NewMaintenanceService(tokens, confirmations, testutil.NewTestLogger())
			now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
			s.now = func() time.Time { return now }

			tokens.On("DeleteExpired", mock.Anything, now).Return(int64(2), tt.tokensErr)
			if tt.tokensErr == nil {
				confirmations.On("DeleteExpired", mock.Anything, now).Return(int64(1), nil)
			}

			err := s.PurgeExpired(context.Background())

			if tt.expectedError {
				assert.Error(t, err)
				confirmations.AssertNotCalled(t, "DeleteExpired", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}
			tokens.AssertExpectations(t)
			confirmations.AssertExpectations(t)
		})
	}
}

func TestMaintenanceService_RunStopsOnCancel(t *testing.T) {
	tokens := new(testutil.MockTokenRepository)
	confirmations := new(testutil.MockConfirmationRepository)
	tokens.On("DeleteExpired", mock.Anything, mock.Anything).Return(int64(0), nil)
	confirmations.On("DeleteExpired", mock.Anything, mock.Anything).Return(int64(0), nil)
	s := NewMaintenanceService(tokens, confirmations, testutil.NewTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, time.Hour)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
	tokens.AssertNumberOfCalls(t, "DeleteExpired", 1)
}
