package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"cramwell-be/internal/dto"
	"cramwell-be/internal/entity"
	"cramwell-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the audit topic into the system_logs table so
// request handling never blocks on a database write for audit records.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
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
	var payload dto.AuditLogMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal audit message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	createdAt := payload.OccurredAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	module := payload.Module
	record := entity.SystemLog{
		Id:        uuid.New(),
		Level:     payload.Level,
		Module:    &module,
		Message:   payload.Message,
		Details:   payload.Details,
		CreatedAt: createdAt,
	}

	if err := uow.SystemLogRepository().Create(ctx, &record); err != nil {
		log.Printf("[ERROR] Failed to persist audit record: %v", err)
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}
