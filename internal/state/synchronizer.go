package state

import (
	"context"

	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/domain"
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/model"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/errorx"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/pubsub"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/session"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/xcontext"
)

// Synchronizer ties the store, the boot sequence, and the write operations
// together. Views read the store; every write goes through a domain call and
// lands in the store twice, once directly from the response and once from
// the realtime echo. The second landing is a no-op.
type Synchronizer struct {
	store      *Store
	mirror     *Mirror
	sessions   *session.Manager
	subscriber pubsub.Subscriber

	authDomain       domain.AuthDomain
	userDomain       domain.UserDomain
	questDomain      domain.QuestDomain
	rewardDomain     domain.RewardDomain
	submissionDomain domain.SubmissionDomain
}

func NewSynchronizer(
	store *Store,
	sessions *session.Manager,
	authDomain domain.AuthDomain,
	userDomain domain.UserDomain,
	questDomain domain.QuestDomain,
	rewardDomain domain.RewardDomain,
	submissionDomain domain.SubmissionDomain,
) *Synchronizer {
	return &Synchronizer{
		store:            store,
		mirror:           NewMirror(store),
		sessions:         sessions,
		authDomain:       authDomain,
		userDomain:       userDomain,
		questDomain:      questDomain,
		rewardDomain:     rewardDomain,
		submissionDomain: submissionDomain,
	}
}

func (s *Synchronizer) Store() *Store {
	return s.store
}

func (s *Synchronizer) Mirror() *Mirror {
	return s.mirror
}

// SetSubscriber attaches the realtime feed consumer. The subscriber must be
// built over Mirror().HandleChange.
func (s *Synchronizer) SetSubscriber(sub pubsub.Subscriber) {
	s.subscriber = sub
}

// Run starts the realtime feed, registers the auth listener, and takes the
// initial snapshot. Both subscribe before boot, so neither a change nor a
// sign in racing the snapshot is lost; the phase guard decides what to do
// with them.
func (s *Synchronizer) Run(ctx context.Context) error {
	if s.subscriber != nil {
		s.subscriber.Subscribe(ctx)
	}

	s.sessions.OnAuthStateChange(func(ctx context.Context, event session.EventType, sess *session.Session) {
		s.handleAuthEvent(ctx, event, sess)
	})

	return s.Boot(ctx)
}

func (s *Synchronizer) Stop(ctx context.Context) error {
	if s.subscriber == nil {
		return nil
	}

	return s.subscriber.Stop(ctx)
}

// Read-only views over the mirrored state.

func (s *Synchronizer) Profile() *model.User {
	return s.store.Profile()
}

func (s *Synchronizer) Quests() []model.Quest {
	return s.store.QuestList()
}

func (s *Synchronizer) Rewards() []model.Reward {
	return s.store.RewardList()
}

func (s *Synchronizer) Submissions() []model.Submission {
	return s.store.SubmissionList()
}

func (s *Synchronizer) Redemptions() []model.Redemption {
	return s.store.RedemptionList()
}

func (s *Synchronizer) Users() []model.User {
	return s.store.UserList()
}

func (s *Synchronizer) Loading() bool {
	return s.store.Loading()
}

func (s *Synchronizer) LoginVisible() bool {
	return s.store.LoginVisible()
}

func (s *Synchronizer) Phase() BootPhase {
	return s.store.Phase()
}

func (s *Synchronizer) Notifications() <-chan model.Notification {
	return s.store.Notifications()
}

func (s *Synchronizer) handleAuthEvent(ctx context.Context, event session.EventType, sess *session.Session) {
	// Auth events arriving mid-boot are echoes of the session the boot is
	// already resolving. Acting on any of them here would interleave with
	// the snapshot, so the latch drops them all.
	if s.store.Phase() == PhaseBooting {
		xcontext.Logger(ctx).Infof("Drop auth event %s during boot", event)
		return
	}

	switch event {
	case session.SignedIn:
		s.store.SetLoginVisible(false)
		if s.store.Profile() != nil || sess == nil {
			return
		}

		// The login action already seeded the profile on the happy path.
		// This covers a sign in from elsewhere, without re-entering the
		// loading state.
		claims, err := xcontext.TokenEngine(ctx).Verify(sess.AccessToken)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Signed-in session does not verify: %v", err)
			return
		}

		ctx = xcontext.WithRequestUserID(ctx, claims.ID)
		ctx = xcontext.WithTokenClaims(ctx, &claims)

		me, err := s.userDomain.GetMe(ctx, &model.GetMeRequest{})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot hydrate profile after sign in: %v", err)
			return
		}

		s.store.SetProfile(&me.User)

	case session.SignedOut:
		s.store.ResetUserScope()
		s.store.SetLoginVisible(false)

	case session.TokenRefreshed:
		// Same identity with a fresher token, nothing to reload.
		s.store.SetLoginVisible(false)
	}
}

// authed attaches the identity of the current session to the context. Guests
// proceed without one and fail role checks downstream.
func (s *Synchronizer) authed(ctx context.Context) context.Context {
	sess := s.sessions.Current()
	if sess == nil {
		return ctx
	}

	claims, err := xcontext.TokenEngine(ctx).Verify(sess.AccessToken)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Session token no longer verifies: %v", err)
		return ctx
	}

	ctx = xcontext.WithRequestUserID(ctx, claims.ID)
	return xcontext.WithTokenClaims(ctx, &claims)
}

func (s *Synchronizer) Login(ctx context.Context, idToken string) (*model.LoginResponse, error) {
	resp, err := s.authDomain.Login(ctx, &model.LoginRequest{IDToken: idToken})
	if err != nil {
		return nil, err
	}

	s.store.SetProfile(&resp.User)
	s.store.SetLoginVisible(false)
	return resp, nil
}

func (s *Synchronizer) Logout(ctx context.Context) error {
	return s.authDomain.Logout(ctx)
}

func (s *Synchronizer) RefreshToken(ctx context.Context) error {
	_, err := s.authDomain.Refresh(ctx, &model.RefreshTokenRequest{})
	return err
}

func (s *Synchronizer) AcceptQuest(ctx context.Context, questID string) (*model.Submission, error) {
	resp, err := s.submissionDomain.Accept(s.authed(ctx), &model.AcceptQuestRequest{QuestID: questID})
	if err != nil {
		return nil, err
	}

	s.store.UpsertSubmission(resp.Submission)
	return &resp.Submission, nil
}

func (s *Synchronizer) SubmitProof(ctx context.Context, req *model.SubmitProofRequest) (*model.Submission, error) {
	resp, err := s.submissionDomain.SubmitProof(s.authed(ctx), req)
	if err != nil {
		return nil, err
	}

	s.store.UpsertSubmission(resp.Submission)
	return &resp.Submission, nil
}

func (s *Synchronizer) ApproveSubmission(ctx context.Context, id string) (*model.Submission, error) {
	return s.reviewSubmission(ctx, id, true)
}

func (s *Synchronizer) RejectSubmission(ctx context.Context, id string) (*model.Submission, error) {
	return s.reviewSubmission(ctx, id, false)
}

func (s *Synchronizer) reviewSubmission(ctx context.Context, id string, approve bool) (*model.Submission, error) {
	resp, err := s.submissionDomain.Review(s.authed(ctx), &model.ReviewSubmissionRequest{
		ID:      id,
		Approve: approve,
	})
	if err != nil {
		return nil, err
	}

	s.store.UpsertSubmission(resp.Submission)
	return &resp.Submission, nil
}

func (s *Synchronizer) RedeemReward(ctx context.Context, rewardID string) (*model.Redemption, error) {
	// A balance the local profile already rules out never reaches the
	// backend. The transactional check there still guards the race.
	if profile := s.store.Profile(); profile != nil {
		if reward, ok := s.store.rewards.Load(rewardID); ok && profile.XP < reward.XPCost {
			return nil, errorx.New(errorx.InsufficientBalance, "Not enough XP for this reward")
		}
	}

	resp, err := s.rewardDomain.Redeem(s.authed(ctx), &model.RedeemRewardRequest{RewardID: rewardID})
	if err != nil {
		return nil, err
	}

	s.store.UpsertRedemption(resp.Redemption)

	// Reflect the debit immediately. The users echo carries the
	// authoritative balance shortly after.
	if profile := s.store.Profile(); profile != nil {
		if reward, ok := s.store.rewards.Load(rewardID); ok && profile.XP >= reward.XPCost {
			debited := *profile
			debited.XP -= reward.XPCost
			s.store.SetProfile(&debited)
		}
	}

	return &resp.Redemption, nil
}

func (s *Synchronizer) CreateQuest(ctx context.Context, req *model.CreateQuestRequest) (*model.Quest, error) {
	resp, err := s.questDomain.Create(s.authed(ctx), req)
	if err != nil {
		return nil, err
	}

	s.store.UpsertQuest(resp.Quest)
	return &resp.Quest, nil
}

func (s *Synchronizer) UpdateQuest(ctx context.Context, req *model.UpdateQuestRequest) (*model.Quest, error) {
	resp, err := s.questDomain.Update(s.authed(ctx), req)
	if err != nil {
		return nil, err
	}

	s.store.UpsertQuest(resp.Quest)
	return &resp.Quest, nil
}

func (s *Synchronizer) ApproveQuest(ctx context.Context, id string) (*model.Quest, error) {
	resp, err := s.questDomain.Approve(s.authed(ctx), &model.ApproveQuestRequest{ID: id})
	if err != nil {
		return nil, err
	}

	s.store.UpsertQuest(resp.Quest)
	return &resp.Quest, nil
}

func (s *Synchronizer) CreateReward(ctx context.Context, req *model.CreateRewardRequest) (*model.Reward, error) {
	resp, err := s.rewardDomain.Create(s.authed(ctx), req)
	if err != nil {
		return nil, err
	}

	s.store.UpsertReward(resp.Reward)
	return &resp.Reward, nil
}

func (s *Synchronizer) UpdateReward(ctx context.Context, req *model.UpdateRewardRequest) (*model.Reward, error) {
	resp, err := s.rewardDomain.Update(s.authed(ctx), req)
	if err != nil {
		return nil, err
	}

	s.store.UpsertReward(resp.Reward)
	return &resp.Reward, nil
}

func (s *Synchronizer) ApproveReward(ctx context.Context, id string) (*model.Reward, error) {
	resp, err := s.rewardDomain.Approve(s.authed(ctx), &model.ApproveRewardRequest{ID: id})
	if err != nil {
		return nil, err
	}

	s.store.UpsertReward(resp.Reward)
	return &resp.Reward, nil
}
