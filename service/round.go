package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/maze-runner/domain"
	"github.com/beka-birhanu/maze-runner/game"
	"github.com/beka-birhanu/maze-runner/service/i"
	"github.com/beka-birhanu/maze-runner/session"
	"github.com/google/uuid"
)

const (
	defaultTokenTTL     = 10 * time.Minute
	defaultTickInterval = time.Second

	// ClaimRoundID is the token claim carrying the round ID.
	ClaimRoundID = "roundID"
)

var (
	ErrEmptyPlayer = errors.New("player name is required")
)

// RoundOptions tunes the rounds handed out to players.
type RoundOptions struct {
	Round        session.Config // Maze and timer settings of every round
	TokenTTL     time.Duration  // Lifetime of a round token and of an unfinished round
	TickInterval time.Duration  // Length of one unit of the round countdown
}

type activeRound struct {
	round     *session.Round
	clock     *game.Clock
	startedAt time.Time
}

// RoundService opens rounds, collects their scores and keeps the records.
type RoundService struct {
	tokenizer   i.Tokenizer
	leaderboard i.Leaderboard
	records     i.RecordStore
	logger      i.Logger
	opts        *RoundOptions
	rounds      map[uuid.UUID]activeRound
	sync.Mutex
}

var _ i.RoundKeeper = &RoundService{}

// NewRoundService creates a RoundService.
func NewRoundService(t i.Tokenizer, lb i.Leaderboard, rs i.RecordStore, logger i.Logger, opts *RoundOptions) (*RoundService, error) {
	if t == nil || lb == nil || rs == nil || logger == nil || opts == nil {
		return nil, ErrMissingDependency
	}

	if opts.TokenTTL <= 0 {
		opts.TokenTTL = defaultTokenTTL
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = defaultTickInterval
	}

	return &RoundService{
		tokenizer:   t,
		leaderboard: lb,
		records:     rs,
		logger:      logger,
		opts:        opts,
		rounds:      make(map[uuid.UUID]activeRound),
	}, nil
}

// StartRound implements i.RoundKeeper.
func (rs *RoundService) StartRound(ctx context.Context) (uuid.UUID, string, *session.Round, error) {
	round, err := session.New(ctx, rs.opts.Round, nil, rs.records)
	if err != nil {
		rs.logger.Error(fmt.Sprintf("Creating round: %s", err))
		return uuid.Nil, "", nil, err
	}

	clock, err := game.NewClock(round, rs.opts.TickInterval)
	if err != nil {
		return uuid.Nil, "", nil, err
	}

	id := uuid.New()
	token, err := rs.tokenizer.Generate(map[string]interface{}{ClaimRoundID: id.String()}, rs.opts.TokenTTL)
	if err != nil {
		rs.logger.Error(fmt.Sprintf("Signing round token: %s", err))
		return uuid.Nil, "", nil, err
	}

	rs.Lock()
	rs.evictExpired(time.Now())
	rs.rounds[id] = activeRound{round: round, clock: clock, startedAt: time.Now()}
	rs.Unlock()

	go clock.Start(func() { rs.expire(id) })

	rs.logger.Info(fmt.Sprintf("Round started: ID=%s", id))
	return id, token, round, nil
}

// evictExpired drops rounds whose token can no longer be used.
// The caller must hold the lock.
func (rs *RoundService) evictExpired(now time.Time) {
	for id, ar := range rs.rounds {
		if now.Sub(ar.startedAt) > rs.opts.TokenTTL {
			if ar.clock != nil {
				ar.clock.Stop()
			}
			delete(rs.rounds, id)
		}
	}
}

// expire drops a round whose countdown ran out before a score arrived.
func (rs *RoundService) expire(id uuid.UUID) {
	rs.Lock()
	_, ok := rs.rounds[id]
	delete(rs.rounds, id)
	rs.Unlock()

	if ok {
		rs.logger.Info(fmt.Sprintf("Round expired: ID=%s", id))
	}
}

// round returns the open round with the given ID.
func (rs *RoundService) round(roundID uuid.UUID) (*session.Round, error) {
	rs.Lock()
	defer rs.Unlock()
	ar, ok := rs.rounds[roundID]
	if !ok {
		return nil, dmn.ErrRoundNotFound
	}
	return ar.round, nil
}

// Move implements i.RoundKeeper.
func (rs *RoundService) Move(ctx context.Context, roundID uuid.UUID, dx, dy int) (*session.Round, bool, bool, error) {
	round, err := rs.round(roundID)
	if err != nil {
		return nil, false, false, err
	}

	moved, ate, err := round.Step(dx, dy)
	if err != nil {
		return nil, false, false, err
	}
	return round, moved, ate, nil
}

// RestartRound implements i.RoundKeeper.
func (rs *RoundService) RestartRound(ctx context.Context, roundID uuid.UUID) (*session.Round, error) {
	round, err := rs.round(roundID)
	if err != nil {
		return nil, err
	}

	if err := round.Restart(ctx); err != nil {
		rs.logger.Error(fmt.Sprintf("Restarting round %s: %s", roundID, err))
		return nil, err
	}

	rs.logger.Info(fmt.Sprintf("Round restarted: ID=%s Generation=%d", roundID, round.Snapshot().Generation))
	return round, nil
}

// SubmitScore implements i.RoundKeeper. The score is the one the round
// earned on the server.
func (rs *RoundService) SubmitScore(ctx context.Context, roundID uuid.UUID, player string) (int, error) {
	player = strings.TrimSpace(player)
	if player == "" {
		return 0, ErrEmptyPlayer
	}

	rs.Lock()
	ar, ok := rs.rounds[roundID]
	if ok {
		delete(rs.rounds, roundID)
	}
	rs.Unlock()
	if !ok {
		return 0, dmn.ErrRoundNotFound
	}
	ar.clock.Stop()

	score, err := ar.round.Finish(ctx)
	if err != nil {
		rs.logger.Error(fmt.Sprintf("Finishing round %s: %s", roundID, err))
		return 0, err
	}

	if err := rs.leaderboard.Submit(ctx, player, score); err != nil {
		rs.logger.Error(fmt.Sprintf("Submitting score for %s: %s", player, err))
		return 0, err
	}

	rs.logger.Info(fmt.Sprintf("Round finished: ID=%s Player=%s Score=%d", roundID, player, score))
	return score, nil
}

// Records implements i.RoundKeeper.
func (rs *RoundService) Records(ctx context.Context, limit int64) (*dmn.Standings, error) {
	top, err := rs.leaderboard.Top(ctx, limit)
	if err != nil {
		return nil, err
	}

	players, err := rs.leaderboard.Count(ctx)
	if err != nil {
		return nil, err
	}

	record, err := rs.records.Record(ctx)
	if err != nil {
		return nil, err
	}

	return &dmn.Standings{
		Scores:  top,
		Players: players,
		Record:  record,
	}, nil
}
