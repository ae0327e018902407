package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"labsimplify/internal/domain"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Simplify(ctx context.Context, input domain.ReportInput) (*domain.SimplifiedReport, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SimplifiedReport), args.Error(1)
}
