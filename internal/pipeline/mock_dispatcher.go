package pipeline

import (
	"context"

	"github.com/stretchr/testify/mock"

	"data-chat/internal/llm"
	"data-chat/internal/table"
)

// MockDispatcher is a mock implementation of Dispatcher using testify/mock.
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, tbl *table.Table, provider llm.Provider, client llm.Client, query string) (string, error) {
	args := m.Called(ctx, tbl, provider, client, query)
	return args.String(0), args.Error(1)
}
