package state

import (
	"sync/atomic"

	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/model"
	"github.com/puzpuzpuz/xsync"
	"golang.org/x/exp/slices"
)

type BootPhase int32

const (
	PhaseBooting BootPhase = iota
	PhaseReady
)

// Store is the in-memory mirror every view reads from. Collections are keyed
// by row id, so replaying a change the store already holds is idempotent.
type Store struct {
	phase        atomic.Int32
	loading      atomic.Bool
	loginVisible atomic.Bool

	profile atomic.Pointer[model.User]

	quests      *xsync.MapOf[string, model.Quest]
	rewards     *xsync.MapOf[string, model.Reward]
	submissions *xsync.MapOf[string, model.Submission]
	redemptions *xsync.MapOf[string, model.Redemption]
	users       *xsync.MapOf[string, model.User]

	notifications chan model.Notification
}

func NewStore(notificationBuffer int) *Store {
	if notificationBuffer <= 0 {
		notificationBuffer = 64
	}

	return &Store{
		quests:        xsync.NewMapOf[model.Quest](),
		rewards:       xsync.NewMapOf[model.Reward](),
		submissions:   xsync.NewMapOf[model.Submission](),
		redemptions:   xsync.NewMapOf[model.Redemption](),
		users:         xsync.NewMapOf[model.User](),
		notifications: make(chan model.Notification, notificationBuffer),
	}
}

func (s *Store) Phase() BootPhase {
	return BootPhase(s.phase.Load())
}

func (s *Store) SetPhase(phase BootPhase) {
	s.phase.Store(int32(phase))
}

func (s *Store) Loading() bool {
	return s.loading.Load()
}

func (s *Store) SetLoading(loading bool) {
	s.loading.Store(loading)
}

func (s *Store) LoginVisible() bool {
	return s.loginVisible.Load()
}

func (s *Store) SetLoginVisible(visible bool) {
	s.loginVisible.Store(visible)
}

func (s *Store) Profile() *model.User {
	return s.profile.Load()
}

func (s *Store) SetProfile(user *model.User) {
	s.profile.Store(user)
}

// UpsertQuest stores a quest row and returns the previous copy, if any.
func (s *Store) UpsertQuest(quest model.Quest) (model.Quest, bool) {
	prev, loaded := s.quests.Load(quest.ID)
	s.quests.Store(quest.ID, quest)
	return prev, loaded
}

func (s *Store) DeleteQuest(id string) {
	s.quests.Delete(id)
}

func (s *Store) UpsertReward(reward model.Reward) (model.Reward, bool) {
	prev, loaded := s.rewards.Load(reward.ID)
	s.rewards.Store(reward.ID, reward)
	return prev, loaded
}

func (s *Store) DeleteReward(id string) {
	s.rewards.Delete(id)
}

func (s *Store) UpsertSubmission(submission model.Submission) (model.Submission, bool) {
	prev, loaded := s.submissions.Load(submission.ID)
	s.submissions.Store(submission.ID, submission)
	return prev, loaded
}

func (s *Store) DeleteSubmission(id string) {
	s.submissions.Delete(id)
}

func (s *Store) UpsertRedemption(redemption model.Redemption) (model.Redemption, bool) {
	prev, loaded := s.redemptions.Load(redemption.ID)
	s.redemptions.Store(redemption.ID, redemption)
	return prev, loaded
}

func (s *Store) UpsertUser(user model.User) {
	s.users.Store(user.ID, user)
	if profile := s.Profile(); profile != nil && profile.ID == user.ID {
		s.SetProfile(&user)
	}
}

func (s *Store) QuestList() []model.Quest {
	result := make([]model.Quest, 0, s.quests.Size())
	s.quests.Range(func(_ string, q model.Quest) bool {
		result = append(result, q)
		return true
	})

	sortByCreation(result, func(q model.Quest) (string, int64) {
		return q.ID, q.CreatedAt.UnixNano()
	})
	return result
}

func (s *Store) RewardList() []model.Reward {
	result := make([]model.Reward, 0, s.rewards.Size())
	s.rewards.Range(func(_ string, r model.Reward) bool {
		result = append(result, r)
		return true
	})

	sortByCreation(result, func(r model.Reward) (string, int64) {
		return r.ID, r.CreatedAt.UnixNano()
	})
	return result
}

func (s *Store) SubmissionList() []model.Submission {
	result := make([]model.Submission, 0, s.submissions.Size())
	s.submissions.Range(func(_ string, sub model.Submission) bool {
		result = append(result, sub)
		return true
	})

	sortByCreation(result, func(sub model.Submission) (string, int64) {
		return sub.ID, sub.CreatedAt.UnixNano()
	})
	return result
}

func (s *Store) RedemptionList() []model.Redemption {
	result := make([]model.Redemption, 0, s.redemptions.Size())
	s.redemptions.Range(func(_ string, r model.Redemption) bool {
		result = append(result, r)
		return true
	})

	sortByCreation(result, func(r model.Redemption) (string, int64) {
		return r.ID, r.CreatedAt.UnixNano()
	})
	return result
}

func (s *Store) UserList() []model.User {
	result := make([]model.User, 0, s.users.Size())
	s.users.Range(func(_ string, u model.User) bool {
		result = append(result, u)
		return true
	})

	sortByCreation(result, func(u model.User) (string, int64) {
		return u.ID, u.CreatedAt.UnixNano()
	})
	return result
}

// Notify pushes a toast onto the notification stream. A full buffer drops
// the oldest entry first; the stream is advisory, never load bearing.
func (s *Store) Notify(n model.Notification) {
	for {
		select {
		case s.notifications <- n:
			return
		default:
			select {
			case <-s.notifications:
			default:
			}
		}
	}
}

func (s *Store) Notifications() <-chan model.Notification {
	return s.notifications
}

// Reset clears every collection and the profile. Used on sign out, so the
// next user never sees leaked rows of the previous one.
func (s *Store) Reset() {
	s.ResetUserScope()
	clearMap(s.quests)
	clearMap(s.rewards)
}

// ResetUserScope clears only what belongs to the signed-out user. The public
// board and reward catalog stay, they are the same for everybody.
func (s *Store) ResetUserScope() {
	s.SetProfile(nil)
	clearMap(s.submissions)
	clearMap(s.redemptions)
	clearMap(s.users)
}

func clearMap[V any](m *xsync.MapOf[string, V]) {
	m.Range(func(key string, _ V) bool {
		m.Delete(key)
		return true
	})
}

func sortByCreation[T any](items []T, key func(T) (string, int64)) {
	slices.SortFunc(items, func(a, b T) bool {
		aID, aAt := key(a)
		bID, bAt := key(b)
		if aAt != bAt {
			return aAt < bAt
		}

		return aID < bID
	})
}
