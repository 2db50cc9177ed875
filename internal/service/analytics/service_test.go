package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/salestracker/internal/domain/models"
)

type mockLedgerSource struct {
	mock.Mock
}

func (m *mockLedgerSource) Ledger(ctx context.Context) (models.Ledger, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.Ledger), args.Error(1)
}

func TestService_Dashboard(t *testing.T) {
	source := new(mockLedgerSource)
	source.On("Ledger", mock.Anything).Return(models.Ledger{
		"2024-03-30": {record("A", 10, 2, 10)},
		"2024-01-01": {record("B", 10, 10, 10)},
	}, nil)

	svc := NewService(source, time.UTC, nil)
	svc.now = func() time.Time { return fixedNow }

	dashboard, err := svc.Dashboard(context.Background(), PeriodLast7Days)

	require.NoError(t, err)
	assert.Equal(t, "7days", dashboard.Period)
	require.Len(t, dashboard.Summaries, 1)
	assert.Equal(t, "2024-03-30", dashboard.Summaries[0].Date)
	require.Len(t, dashboard.TopProducts, 2)
	assert.Equal(t, "B", dashboard.TopProducts[0].ProductName)
	assert.Equal(t, 20.0, dashboard.Stats.Total.Revenue)
	source.AssertExpectations(t)
}

func TestService_Dashboard_SourceError(t *testing.T) {
	source := new(mockLedgerSource)
	source.On("Ledger", mock.Anything).Return(nil, errors.New("store down"))

	svc := NewService(source, nil, nil)

	_, err := svc.Dashboard(context.Background(), PeriodAll)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "store down")
}
