// Package events publishes domain events to Redis pub/sub channels, where a
// gateway can forward them over SSE.
package events

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Channel names.
const (
	ChannelStatusChanged = "application.status_changed"
	ChannelFollowUpDue   = "reminder.follow_up_due"
)

// StatusChanged is the payload published when an application moves to a new
// status.
type StatusChanged struct {
	Type          string `json:"type"`
	ApplicationID string `json:"applicationId"`
	UserID        string `json:"userId"`
	From          string `json:"from"`
	To            string `json:"to"`
}

// FollowUpDue is the payload published for each application with an overdue
// follow-up date.
type FollowUpDue struct {
	Type          string `json:"type"`
	ApplicationID string `json:"applicationId"`
	UserID        string `json:"userId"`
	CompanyName   string `json:"companyName"`
	FollowUpDate  string `json:"followUpDate"`
}

// Publisher is the narrow pub/sub surface the rest of the code depends on.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// RedisPublisher publishes through a go-redis client.
type RedisPublisher struct {
	rdb *redis.Client
}

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

func (p *RedisPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	return p.rdb.Publish(ctx, channel, payload).Err()
}
