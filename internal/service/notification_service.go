package service

import (
	"context"
	"strings"

	"tg-miniapp-be/internal/pkg/logger"
	"tg-miniapp-be/internal/websocket"
	"tg-miniapp-be/pkg/events"
	pktNats "tg-miniapp-be/pkg/nats"

	"github.com/google/uuid"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, frame websocket.Frame)
	Broadcast(frame websocket.Frame)
}

// NotificationService relays bus events to connected Mini App clients.
// Delivery is ephemeral: a user who is offline when their generation
// completes sees the result in their history, not in a stored inbox.
type NotificationService struct {
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	if s.delivery == nil {
		return nil
	}

	// NATS subjects carry the stream prefix; the frame type is the bare code.
	typeCode := strings.TrimPrefix(event.EventType(), "events.")

	frame := websocket.Frame{
		Type: typeCode,
		Data: event.Payload(),
	}

	uidStr, _ := event.Payload()["user_id"].(string)
	if uidStr == "" {
		s.logger.Warn("NotificationService", "Event without user_id, broadcasting", map[string]interface{}{"type": typeCode})
		s.delivery.Broadcast(frame)
		return nil
	}

	uid, err := uuid.Parse(uidStr)
	if err != nil {
		s.logger.Warn("NotificationService", "Event with malformed user_id", map[string]interface{}{
			"type": typeCode, "user_id": uidStr,
		})
		return nil
	}

	s.delivery.Send(uid, frame)
	return nil
}
