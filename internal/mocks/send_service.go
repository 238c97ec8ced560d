package mocks

import (
	"context"

	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/service"
	"github.com/stretchr/testify/mock"
)

type SendService struct {
	mock.Mock
}

func (s *SendService) SendTask(ctx context.Context, cmd service.SendTaskCommand) error {
	args := s.Called(ctx, cmd)
	return args.Error(0)
}
