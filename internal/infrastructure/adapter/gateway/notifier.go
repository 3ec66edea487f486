package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"

	coreport "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/core"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/gateway"
	"github.com/go-redis/redis/v8"
)

// DefaultNotificationChannel is the Redis channel notifications are published on
const DefaultNotificationChannel = "backoffice:notifications"

// LogNotifier writes notifications to the application log
type LogNotifier struct {
	logger coreport.Logger
}

var _ gateway.Notifier = (*LogNotifier)(nil)

// NewLogNotifier creates a notifier that only logs
func NewLogNotifier(logger coreport.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the notification at info level
func (n *LogNotifier) Notify(_ context.Context, notification gateway.Notification) error {
	fields := maps.Clone(notification.Fields)
	if fields == nil {
		fields = make(map[string]any, 3)
	}
	fields["event"] = notification.Event
	fields["transaction_id"] = notification.TransactionID
	if notification.RecipientID != "" {
		fields["recipient_id"] = notification.RecipientID
	}
	n.logger.Info("Notification", fields)
	return nil
}

// message is the JSON document published for each notification
type message struct {
	Event         string         `json:"event"`
	TransactionID string         `json:"transaction_id"`
	RecipientID   string         `json:"recipient_id,omitempty"`
	Fields        map[string]any `json:"fields,omitempty"`
}

// RedisNotifier publishes notifications on a Redis channel for the front-office
type RedisNotifier struct {
	rdb     *redis.Client
	channel string
	logger  coreport.Logger
}

var _ gateway.Notifier = (*RedisNotifier)(nil)

// NewRedisNotifier creates a notifier publishing on channel
func NewRedisNotifier(rdb *redis.Client, channel string, logger coreport.Logger) *RedisNotifier {
	if channel == "" {
		channel = DefaultNotificationChannel
	}
	return &RedisNotifier{rdb: rdb, channel: channel, logger: logger}
}

// Notify publishes the notification as JSON
func (n *RedisNotifier) Notify(ctx context.Context, notification gateway.Notification) error {
	payload, err := json.Marshal(message{
		Event:         notification.Event,
		TransactionID: notification.TransactionID,
		RecipientID:   notification.RecipientID,
		Fields:        notification.Fields,
	})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	receivers, err := n.rdb.Publish(ctx, n.channel, payload).Result()
	if err != nil {
		return fmt.Errorf("publish %s: %w", notification.Event, err)
	}

	n.logger.Debug("Notification published", map[string]any{
		"event":          notification.Event,
		"transaction_id": notification.TransactionID,
		"receivers":      receivers,
	})
	return nil
}
