package testutil

import (
	"context"
	"sync"

	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/pubsub"
)

// MockPublisher records every published pack, in order.
type MockPublisher struct {
	mu     sync.Mutex
	packs  []*pubsub.Pack
	topics []string
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (p *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.packs = append(p.packs, pack)
	p.topics = append(p.topics, topic)
	return nil
}

func (p *MockPublisher) Packs() []*pubsub.Pack {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*pubsub.Pack{}, p.packs...)
}
