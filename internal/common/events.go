package common

import (
	"context"
	"encoding/json"

	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/model"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/pubsub"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/xcontext"
)

// PublishChange emits one committed row change on the realtime topic.
// Delivery is best effort; a failed publish is logged and the caller's
// write still stands, the same as a missed replication tick.
func PublishChange(ctx context.Context, publisher pubsub.Publisher, table, op string, newRow, oldRow any) {
	ev := model.ChangeEvent{
		Table: table,
		Op:    op,
		New:   toRow(ctx, newRow),
		Old:   toRow(ctx, oldRow),
	}

	msg, err := json.Marshal(ev)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal change event: %v", err)
		return
	}

	topic := xcontext.Configs(ctx).Sync.ChangeTopic
	err = publisher.Publish(ctx, topic, &pubsub.Pack{Key: []byte(table), Msg: msg})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot publish change event: %v", err)
	}
}

func toRow(ctx context.Context, row any) map[string]any {
	if row == nil {
		return nil
	}

	b, err := json.Marshal(row)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal change row: %v", err)
		return nil
	}

	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot unmarshal change row: %v", err)
		return nil
	}

	return m
}
