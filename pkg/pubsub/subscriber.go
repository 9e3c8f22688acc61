package pubsub

import (
	"context"
	"time"
)

// SubscribeHandler is called once per delivered pack, in emission order of a
// single topic. No ordering holds across topics.
type SubscribeHandler func(ctx context.Context, pack *Pack, t time.Time)

type Subscriber interface {
	// Subscribe consumes the configured topics until ctx is canceled or Stop
	// is called. It returns after the consume loop has started.
	Subscribe(ctx context.Context)
	Stop(ctx context.Context) error
}
