package mocks

import (
	"github.com/Reventlow/lectio-msg-via-playwright-api/pkg/mq"
	"github.com/stretchr/testify/mock"
)

type QueueInspector struct {
	mock.Mock
}

func (q *QueueInspector) Inspect(queue string) (mq.QueueStats, error) {
	args := q.Called(queue)
	return args.Get(0).(mq.QueueStats), args.Error(1)
}
