package notify

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisPublisher_PublishAssignment(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	pub := NewRedisPublisher(rdb, "")

	d := Decision{
		JobTypeID:    "jt-plumbing",
		ContractorID: "c-42",
		Date:         "2026-03-02",
		SlotStart:    "09:00",
		OverallScore: 87.5,
	}
	payload, err := json.Marshal(d)
	require.NoError(t, err)

	mock.ExpectPublish(defaultChannel, payload).SetVal(1)

	err = pub.PublishAssignment(context.Background(), d)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisPublisher_CustomChannel(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	pub := NewRedisPublisher(rdb, "dispatch.events")

	d := Decision{JobTypeID: "jt", ContractorID: "c"}
	payload, err := json.Marshal(d)
	require.NoError(t, err)

	mock.ExpectPublish("dispatch.events", payload).SetVal(0)

	require.NoError(t, pub.PublishAssignment(context.Background(), d))
	assert.NoError(t, mock.ExpectationsWereMet())
}
