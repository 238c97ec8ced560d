package mocks

import (
	"context"

	"github.com/Reventlow/lectio-msg-via-playwright-api/pkg/portal"
	"github.com/stretchr/testify/mock"
)

type PortalClient struct {
	mock.Mock
}

func (p *PortalClient) SendMessage(ctx context.Context, creds portal.Credentials, msg portal.Message) error {
	args := p.Called(ctx, creds, msg)
	return args.Error(0)
}
