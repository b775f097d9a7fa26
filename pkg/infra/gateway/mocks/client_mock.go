package mocks

import (
	"context"
	"fmt"

	"github.com/stretchr/testify/mock"

	"github.com/CloudArcade/GameGate/pkg/domain/session"
	"github.com/CloudArcade/GameGate/pkg/infra/gateway"
)

type Client struct {
	mock.Mock
}

func (m *Client) MakeRequest(
	ctx context.Context,
	method, path string,
	headers map[string]string,
	body interface{},
) (int, []byte, error) {
	args := m.Called(ctx, method, path, headers, body)
	respBody, ok := args.Get(1).([]byte)
	if !ok && args.Get(1) != nil {
		return 0, nil, fmt.Errorf("expected []byte, got %T", args.Get(1))
	}
	return args.Int(0), respBody, args.Error(2)
}

func (m *Client) CreateSession(ctx context.Context, data session.CreateRequest) (*gateway.Response, error) {
	args := m.Called(ctx, data)
	resp, ok := args.Get(0).(*gateway.Response)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected *gateway.Response, got %T", args.Get(0))
	}
	return resp, args.Error(1)
}

func (m *Client) ListApplications(ctx context.Context) (*gateway.Response, error) {
	args := m.Called(ctx)
	resp, ok := args.Get(0).(*gateway.Response)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected *gateway.Response, got %T", args.Get(0))
	}
	return resp, args.Error(1)
}
