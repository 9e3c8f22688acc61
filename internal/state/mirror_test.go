package state

import (
	"context"
	"testing"
	"time"

	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/common"
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/domain"
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/entity"
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/model"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/logger"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/testutil"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func mirrorContext() context.Context {
	ctx := xcontext.WithConfigs(context.Background(), testutil.MockConfigs())
	return xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
}

// changeOf runs a row through the real publish path and hands the resulting
// pack to the mirror, so encode and decode are exercised together.
func changeOf(t *testing.T, ctx context.Context, table, op string, newRow, oldRow any) func(*Mirror) {
	publisher := testutil.NewMockPublisher()
	common.PublishChange(ctx, publisher, table, op, newRow, oldRow)
	packs := publisher.Packs()
	require.Len(t, packs, 1)

	return func(m *Mirror) {
		m.HandleChange(ctx, packs[0], time.Now())
	}
}

func drainNotifications(store *Store) []model.Notification {
	var result []model.Notification
	for {
		select {
		case n := <-store.Notifications():
			result = append(result, n)
		default:
			return result
		}
	}
}

func Test_Mirror_ownWriteEchoIsIdempotent(t *testing.T) {
	ctx := mirrorContext()
	store := NewStore(16)
	mirror := NewMirror(store)

	submission := testutil.SampleSubmission(entity.Submission{
		QuestID:    "quest-1",
		TravelerID: "traveler-1",
	})

	// The optimistic write already placed the row.
	store.UpsertSubmission(domain.ConvertSubmission(&submission))
	require.Len(t, store.SubmissionList(), 1)

	// The realtime echo of the same insert changes nothing.
	changeOf(t, ctx, model.TableSubmissions, model.OpInsert, &submission, nil)(mirror)
	require.Len(t, store.SubmissionList(), 1)
	require.Empty(t, drainNotifications(store))
}

func Test_Mirror_questGoingLiveNotifiesOnce(t *testing.T) {
	ctx := mirrorContext()
	store := NewStore(16)
	mirror := NewMirror(store)

	quest := testutil.SampleQuest(entity.Quest{Status: entity.PendingAdmin})
	changeOf(t, ctx, model.TableQuests, model.OpInsert, &quest, nil)(mirror)
	require.Empty(t, drainNotifications(store))

	approved := quest
	approved.Status = entity.Active
	changeOf(t, ctx, model.TableQuests, model.OpUpdate, &approved, &quest)(mirror)

	notifications := drainNotifications(store)
	require.Len(t, notifications, 1)
	require.Equal(t, "quest_live", notifications[0].Type)
	require.Equal(t, quest.ID, notifications[0].Ref)

	// Replaying the same update stays silent.
	changeOf(t, ctx, model.TableQuests, model.OpUpdate, &approved, &quest)(mirror)
	require.Empty(t, drainNotifications(store))

	// And the board still holds a single copy.
	require.Len(t, store.QuestList(), 1)
	require.Equal(t, "active", store.QuestList()[0].Status)
}

func Test_Mirror_pendingProofNotifiesAdminsOnly(t *testing.T) {
	ctx := mirrorContext()

	submission := testutil.SampleSubmission(entity.Submission{
		QuestID:    "quest-1",
		TravelerID: "traveler-1",
		Status:     entity.Pending,
	})

	adminStore := NewStore(16)
	adminStore.SetProfile(&model.User{ID: "admin-1", Role: "admin"})
	changeOf(t, ctx, model.TableSubmissions, model.OpInsert, &submission, nil)(NewMirror(adminStore))

	notifications := drainNotifications(adminStore)
	require.Len(t, notifications, 1)
	require.Equal(t, "proof_submitted", notifications[0].Type)

	otherStore := NewStore(16)
	otherStore.SetProfile(&model.User{ID: "traveler-2", Role: "traveler"})
	changeOf(t, ctx, model.TableSubmissions, model.OpInsert, &submission, nil)(NewMirror(otherStore))
	require.Empty(t, drainNotifications(otherStore))
}

func Test_Mirror_resubmissionNotifiesTraveler(t *testing.T) {
	ctx := mirrorContext()
	store := NewStore(16)
	mirror := NewMirror(store)
	store.SetProfile(&model.User{ID: "traveler-1", Role: "traveler"})

	rejected := testutil.SampleSubmission(entity.Submission{
		QuestID:    "quest-1",
		TravelerID: "traveler-1",
		Status:     entity.Rejected,
	})
	changeOf(t, ctx, model.TableSubmissions, model.OpInsert, &rejected, nil)(mirror)
	drainNotifications(store)

	// The second try moving back to pending tells the traveler exactly once.
	resubmitted := rejected
	resubmitted.Status = entity.Pending
	changeOf(t, ctx, model.TableSubmissions, model.OpUpdate, &resubmitted, &rejected)(mirror)

	notifications := drainNotifications(store)
	require.Len(t, notifications, 1)
	require.Equal(t, "proof_pending", notifications[0].Type)
	require.Equal(t, rejected.ID, notifications[0].Ref)

	// The echo of the resubmission stays silent.
	changeOf(t, ctx, model.TableSubmissions, model.OpUpdate, &resubmitted, &rejected)(mirror)
	require.Empty(t, drainNotifications(store))
}

func Test_Mirror_submissionDeleteRemovesRow(t *testing.T) {
	ctx := mirrorContext()
	store := NewStore(16)
	mirror := NewMirror(store)

	submission := testutil.SampleSubmission(entity.Submission{
		QuestID:    "quest-1",
		TravelerID: "traveler-1",
	})
	changeOf(t, ctx, model.TableSubmissions, model.OpInsert, &submission, nil)(mirror)
	require.Len(t, store.SubmissionList(), 1)

	changeOf(t, ctx, model.TableSubmissions, model.OpDelete, nil, &submission)(mirror)
	require.Empty(t, store.SubmissionList())
}

func Test_Mirror_reviewOutcomeNotifiesTraveler(t *testing.T) {
	ctx := mirrorContext()
	store := NewStore(16)
	mirror := NewMirror(store)
	store.SetProfile(&model.User{ID: "traveler-1", Role: "traveler"})

	submission := testutil.SampleSubmission(entity.Submission{
		QuestID:    "quest-1",
		TravelerID: "traveler-1",
		Status:     entity.Pending,
	})
	changeOf(t, ctx, model.TableSubmissions, model.OpInsert, &submission, nil)(mirror)
	drainNotifications(store)

	approved := submission
	approved.Status = entity.Approved
	changeOf(t, ctx, model.TableSubmissions, model.OpUpdate, &approved, &submission)(mirror)

	notifications := drainNotifications(store)
	require.Len(t, notifications, 1)
	require.Equal(t, "proof_approved", notifications[0].Type)

	// The echo of the same review stays silent.
	changeOf(t, ctx, model.TableSubmissions, model.OpUpdate, &approved, &submission)(mirror)
	require.Empty(t, drainNotifications(store))
}

func Test_Mirror_userUpdateRefreshesProfile(t *testing.T) {
	ctx := mirrorContext()
	store := NewStore(16)
	mirror := NewMirror(store)

	user := testutil.SampleUser(entity.User{XP: 50})
	store.SetProfile(&model.User{ID: user.ID, XP: 50})

	user.XP = 150
	changeOf(t, ctx, model.TableUsers, model.OpUpdate, &user, nil)(mirror)

	require.EqualValues(t, 150, store.Profile().XP)

	// Another user's update never touches the profile.
	other := testutil.SampleUser(entity.User{XP: 999})
	changeOf(t, ctx, model.TableUsers, model.OpUpdate, &other, nil)(mirror)
	require.EqualValues(t, 150, store.Profile().XP)
}
