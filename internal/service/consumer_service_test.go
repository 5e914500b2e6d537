package service

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/cristiansanchez/indice/internal/pkg/logger"
	"github.com/cristiansanchez/indice/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestConsumerService_LogsActivity(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	consumer := NewConsumerService(pubSub, events.Topic, logger.NewFromZap(zap.New(core)))
	require.NoError(t, consumer.Consume(ctx))

	publisher := events.NewBusPublisher(pubSub, nil)
	publisher.Publish(ctx, events.New(events.TypeIndexGenerated, map[string]interface{}{"modules": 4}))
	require.NoError(t, pubSub.Publish(events.Topic, message.NewMessage(watermill.NewUUID(), []byte("not json"))))

	assert.Eventually(t, func() bool { return logs.Len() == 2 }, time.Second, 10*time.Millisecond)

	audit := logs.FilterMessage(events.TypeIndexGenerated).All()
	require.Len(t, audit, 1)
	assert.Equal(t, "AUDIT", audit[0].ContextMap()["module"])
	assert.Equal(t, 1, logs.FilterMessage("Failed to unmarshal activity event").Len())

	cancel()
	consumer.Wait()
}
