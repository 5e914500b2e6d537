package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/cristiansanchez/indice/internal/pkg/logger"
	"github.com/cristiansanchez/indice/pkg/events"
)

type IConsumerService interface {
	// Consume subscribes to the activity topic and returns once the
	// subscription is live. Messages are processed until ctx is cancelled.
	Consume(ctx context.Context) error
	// Wait blocks until the processing goroutine has exited.
	Wait()
}

// consumerService writes every activity event to the audit log.
type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	logger     logger.ILogger
	wg         sync.WaitGroup
}

func NewConsumerService(subscriber message.Subscriber, topicName string, logger logger.ILogger) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		logger:     logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	cs.wg.Add(1)
	go func() {
		defer cs.wg.Done()
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) Wait() {
	cs.wg.Wait()
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var envelope events.Envelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		cs.logger.Error("AUDIT", "Failed to unmarshal activity event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack() // malformed payloads are dropped
		return
	}

	cs.logger.Info("AUDIT", envelope.Type, map[string]interface{}{
		"message_id":  msg.UUID,
		"occurred_at": envelope.OccurredAt,
		"data":        envelope.Data,
	})
	msg.Ack()
}
