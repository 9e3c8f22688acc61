package state

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/model"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/pubsub"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/xcontext"
	"github.com/mitchellh/mapstructure"
)

// Mirror applies committed row changes to the store. Every write path also
// updates the store directly after its request returns, so the mirror will
// regularly see echoes of rows the store already holds; applying them again
// must change nothing.
type Mirror struct {
	store *Store
}

func NewMirror(store *Store) *Mirror {
	return &Mirror{store: store}
}

// HandleChange is the subscriber callback of the realtime topic.
func (m *Mirror) HandleChange(ctx context.Context, pack *pubsub.Pack, t time.Time) {
	var ev model.ChangeEvent
	if err := json.Unmarshal(pack.Msg, &ev); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot unmarshal change event: %v", err)
		return
	}

	switch ev.Table {
	case model.TableQuests:
		m.applyQuest(ctx, ev)
	case model.TableRewards:
		m.applyReward(ctx, ev)
	case model.TableSubmissions:
		m.applySubmission(ctx, ev)
	case model.TableRedemptions:
		m.applyRedemption(ctx, ev)
	case model.TableUsers:
		m.applyUser(ctx, ev)
	default:
		xcontext.Logger(ctx).Debugf("Ignore change of unknown table %s", ev.Table)
	}
}

func (m *Mirror) applyQuest(ctx context.Context, ev model.ChangeEvent) {
	if ev.Op == model.OpDelete {
		var old model.Quest
		if err := decodeRow(ev.Old, &old); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot decode quest row: %v", err)
			return
		}

		m.store.DeleteQuest(old.ID)
		return
	}

	var quest model.Quest
	if err := decodeRow(ev.New, &quest); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decode quest row: %v", err)
		return
	}

	prev, loaded := m.store.UpsertQuest(quest)

	// A quest turning active is the moment it appears on the public board.
	// The echo of an already-live row must stay silent.
	if quest.Status == "active" && (!loaded || prev.Status != "active") {
		m.store.Notify(model.Notification{
			Type:    "quest_live",
			Message: fmt.Sprintf("Quest %q is now live", quest.Title),
			Ref:     quest.ID,
		})
	}
}

func (m *Mirror) applyReward(ctx context.Context, ev model.ChangeEvent) {
	if ev.Op == model.OpDelete {
		var old model.Reward
		if err := decodeRow(ev.Old, &old); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot decode reward row: %v", err)
			return
		}

		m.store.DeleteReward(old.ID)
		return
	}

	var reward model.Reward
	if err := decodeRow(ev.New, &reward); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decode reward row: %v", err)
		return
	}

	m.store.UpsertReward(reward)
}

func (m *Mirror) applySubmission(ctx context.Context, ev model.ChangeEvent) {
	if ev.Op == model.OpDelete {
		var old model.Submission
		if err := decodeRow(ev.Old, &old); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot decode submission row: %v", err)
			return
		}

		m.store.DeleteSubmission(old.ID)
		return
	}

	var submission model.Submission
	if err := decodeRow(ev.New, &submission); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decode submission row: %v", err)
		return
	}

	prev, loaded := m.store.UpsertSubmission(submission)

	// Notifications key off status transitions, not raw events. The echo of
	// an optimistic write carries the status the store already shows and
	// stays silent.
	if loaded && prev.Status == submission.Status {
		return
	}

	profile := m.store.Profile()
	if profile == nil {
		return
	}

	switch submission.Status {
	case "pending":
		if profile.Role == "admin" {
			m.store.Notify(model.Notification{
				Type:    "proof_submitted",
				Message: "A new proof is waiting for review",
				Ref:     submission.ID,
			})
		}

		// An existing row moving to pending is the traveler's own
		// resubmission landing; a fresh insert already told them nothing
		// they did not just do.
		if loaded && profile.ID == submission.TravelerID {
			m.store.Notify(model.Notification{
				Type:    "proof_pending",
				Message: "Your proof was submitted for review",
				Ref:     submission.ID,
			})
		}
	case "approved":
		if profile.ID == submission.TravelerID {
			m.store.Notify(model.Notification{
				Type:    "proof_approved",
				Message: "Your proof was approved",
				Ref:     submission.ID,
			})
		}
	case "rejected":
		if profile.ID == submission.TravelerID {
			m.store.Notify(model.Notification{
				Type:    "proof_rejected",
				Message: "Your proof was rejected",
				Ref:     submission.ID,
			})
		}
	}
}

func (m *Mirror) applyRedemption(ctx context.Context, ev model.ChangeEvent) {
	var redemption model.Redemption
	if err := decodeRow(ev.New, &redemption); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decode redemption row: %v", err)
		return
	}

	m.store.UpsertRedemption(redemption)
}

func (m *Mirror) applyUser(ctx context.Context, ev model.ChangeEvent) {
	var user model.User
	if err := decodeRow(ev.New, &user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decode user row: %v", err)
		return
	}

	m.store.UpsertUser(user)
}

// decodeRow maps the loose row of a change event onto a typed model. Rows
// travel as JSON objects keyed by field name, with timestamps in RFC 3339.
func decodeRow(row map[string]any, out any) error {
	if row == nil {
		return fmt.Errorf("empty row")
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}

	return decoder.Decode(row)
}
