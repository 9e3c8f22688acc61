package xredis

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/pubsub"
	"github.com/redis/go-redis/v9"
)

type subscriber struct {
	client  *redis.Client
	topics  []string
	handler pubsub.SubscribeHandler
	pubsub  *redis.PubSub
}

func NewSubscriber(
	client *redis.Client, topics []string, handler pubsub.SubscribeHandler,
) pubsub.Subscriber {
	return &subscriber{client: client, topics: topics, handler: handler}
}

func (s *subscriber) Subscribe(ctx context.Context) {
	s.pubsub = s.client.Subscribe(ctx, s.topics...)

	go func() {
		for msg := range s.pubsub.Channel() {
			var pack pubsub.Pack
			if err := json.Unmarshal([]byte(msg.Payload), &pack); err != nil {
				log.Printf("Cannot unmarshal pack on %s: %v", msg.Channel, err)
				continue
			}

			s.handler(ctx, &pack, time.Now())
		}
	}()
}

func (s *subscriber) Stop(ctx context.Context) error {
	if s.pubsub == nil {
		return nil
	}

	return s.pubsub.Close()
}
