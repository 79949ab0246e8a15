package service

import (
	"context"
	"encoding/json"

	"deposit-defender-be/internal/dto"
	"deposit-defender-be/internal/pkg/logger"
	"deposit-defender-be/pkg/events"
	pktNats "deposit-defender-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process audit topic, writes each event to the
// audit log, and relays it to NATS when a broker is reachable. NATS failures
// never block the flow; the zap log is the source of truth.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	natsPub   *pktNats.Publisher
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	natsPub *pktNats.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		natsPub:   natsPub,
		logger:    log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.AuditEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal audit event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.logger.Info("AuditTrail", payload.Event, map[string]interface{}{
		"case_id":     payload.CaseId,
		"details":     payload.Details,
		"occurred_at": payload.OccurredAt,
	})

	if cs.natsPub != nil {
		evt := events.BaseEvent{
			Type:       payload.Event,
			Data:       eventData(payload),
			OccurredAt: payload.OccurredAt,
		}
		if err := cs.natsPub.Publish(ctx, evt); err != nil {
			cs.logger.Warn("ConsumerService", "Failed to relay audit event to NATS", map[string]interface{}{
				"event": payload.Event,
				"error": err.Error(),
			})
		}
	}

	msg.Ack()
}

func eventData(payload dto.AuditEventMessage) map[string]interface{} {
	data := map[string]interface{}{"case_id": payload.CaseId}
	for k, v := range payload.Details {
		data[k] = v
	}
	return data
}
