package xredis

import (
	"context"
	"encoding/json"

	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/pubsub"
	"github.com/redis/go-redis/v9"
)

type publisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) pubsub.Publisher {
	return &publisher{client: client}
}

func (p *publisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	b, err := json.Marshal(pack)
	if err != nil {
		return err
	}

	return p.client.Publish(ctx, topic, b).Err()
}
