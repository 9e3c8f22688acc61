package state

import (
	"context"
	"sync"
	"time"

	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/model"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/xcontext"
	"golang.org/x/sync/errgroup"
)

const defaultBootTimeout = 12 * time.Second

// Boot takes the initial snapshot of the backend state. The public board
// loads first and degrades to empty on failure; the recovered session then
// decides which personal collections to load, independent ones in parallel.
//
// The store phase stays at PhaseBooting for the whole sequence, which is
// what defers auth events racing against the snapshot.
func (s *Synchronizer) Boot(ctx context.Context) error {
	s.store.SetPhase(PhaseBooting)
	s.store.SetLoading(true)
	s.store.SetLoginVisible(false)

	logger := xcontext.Logger(ctx)

	var releaseOnce sync.Once
	release := func(reason string) {
		releaseOnce.Do(func() {
			if reason != "" {
				logger.Warnf("Boot released early: %s", reason)
			}

			s.store.SetPhase(PhaseReady)
			s.store.SetLoading(false)
		})
	}

	// The safety valve unblocks the UI if the backend hangs. It never
	// cancels the snapshot requests; whatever arrives later still lands in
	// the store.
	timeout := xcontext.Configs(ctx).Sync.BootTimeout.Duration
	if timeout <= 0 {
		timeout = defaultBootTimeout
	}

	valve := time.AfterFunc(timeout, func() { release("timeout") })
	defer valve.Stop()
	defer release("")

	// The board is public. A failed fetch leaves it empty, it never blocks
	// the rest of the boot.
	if quests, err := s.questDomain.GetList(ctx, &model.GetQuestsRequest{Status: "active"}); err != nil {
		logger.Errorf("Cannot load quest board: %v", err)
	} else {
		for _, quest := range quests.Quests {
			s.store.UpsertQuest(quest)
		}
	}

	if rewards, err := s.rewardDomain.GetList(ctx, &model.GetRewardsRequest{Status: "active"}); err != nil {
		logger.Errorf("Cannot load reward catalog: %v", err)
	} else {
		for _, reward := range rewards.Rewards {
			s.store.UpsertReward(reward)
		}
	}

	// A guest or a broken session keeps browsing the board; the login
	// overlay never opens on its own.
	sess, err := s.sessions.Recover()
	if err != nil {
		logger.Errorf("Cannot recover session: %v", err)
		return err
	}

	if sess == nil {
		return nil
	}

	claims, err := xcontext.TokenEngine(ctx).Verify(sess.AccessToken)
	if err != nil {
		logger.Debugf("Recovered session has an invalid token: %v", err)
		return nil
	}

	ctx = xcontext.WithRequestUserID(ctx, claims.ID)
	ctx = xcontext.WithTokenClaims(ctx, &claims)

	me, err := s.userDomain.GetMe(ctx, &model.GetMeRequest{})
	if err != nil {
		logger.Errorf("Cannot load profile: %v", err)
		return err
	}

	s.store.SetProfile(&me.User)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		submissions, err := s.submissionDomain.GetMySubmissions(gctx, &model.GetMySubmissionsRequest{})
		if err != nil {
			return err
		}

		for _, submission := range submissions.Submissions {
			s.store.UpsertSubmission(submission)
		}

		return nil
	})

	g.Go(func() error {
		redemptions, err := s.rewardDomain.GetMyRedemptions(gctx, &model.GetMyRedemptionsRequest{})
		if err != nil {
			return err
		}

		for _, redemption := range redemptions.Redemptions {
			s.store.UpsertRedemption(redemption)
		}

		return nil
	})

	if me.User.Role == "admin" {
		g.Go(func() error {
			pending, err := s.submissionDomain.GetPendingSubmissions(gctx, &model.GetPendingSubmissionsRequest{})
			if err != nil {
				return err
			}

			for _, submission := range pending.Submissions {
				s.store.UpsertSubmission(submission)
			}

			return nil
		})

		g.Go(func() error {
			users, err := s.userDomain.GetUsers(gctx, &model.GetUsersRequest{})
			if err != nil {
				return err
			}

			for _, user := range users.Users {
				s.store.UpsertUser(user)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Errorf("Cannot load personal collections: %v", err)
		return err
	}

	return nil
}
