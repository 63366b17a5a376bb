package roundapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beka-birhanu/maze-runner/api"
	api_i "github.com/beka-birhanu/maze-runner/api/i"
	"github.com/beka-birhanu/maze-runner/api/middleware"
	dmn "github.com/beka-birhanu/maze-runner/domain"
	"github.com/beka-birhanu/maze-runner/service"
	"github.com/beka-birhanu/maze-runner/session"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type zeroRecords struct{}

func (zeroRecords) Record(context.Context) (int, error)  { return 0, nil }
func (zeroRecords) SetRecord(context.Context, int) error { return nil }

type stubKeeper struct {
	roundID   uuid.UUID
	cfg       session.Config
	round     *session.Round
	startErr  error
	submitted map[uuid.UUID]string
	standings *dmn.Standings
	limit     int64
}

func (s *stubKeeper) newRound(ctx context.Context) (*session.Round, error) {
	round, err := session.New(ctx, s.cfg, rand.New(rand.NewSource(1)), zeroRecords{})
	if err != nil {
		return nil, err
	}
	s.round = round
	return round, nil
}

func (s *stubKeeper) StartRound(ctx context.Context) (uuid.UUID, string, *session.Round, error) {
	if s.startErr != nil {
		return uuid.Nil, "", nil, s.startErr
	}
	round, err := s.newRound(ctx)
	if err != nil {
		return uuid.Nil, "", nil, err
	}
	return s.roundID, "token-" + s.roundID.String(), round, nil
}

func (s *stubKeeper) current(ctx context.Context, roundID uuid.UUID) (*session.Round, error) {
	if roundID != s.roundID {
		return nil, dmn.ErrRoundNotFound
	}
	if s.round == nil {
		return s.newRound(ctx)
	}
	return s.round, nil
}

func (s *stubKeeper) Move(ctx context.Context, roundID uuid.UUID, dx, dy int) (*session.Round, bool, bool, error) {
	round, err := s.current(ctx, roundID)
	if err != nil {
		return nil, false, false, err
	}
	moved, ate, err := round.Step(dx, dy)
	if err != nil {
		return nil, false, false, err
	}
	return round, moved, ate, nil
}

func (s *stubKeeper) RestartRound(ctx context.Context, roundID uuid.UUID) (*session.Round, error) {
	round, err := s.current(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if err := round.Restart(ctx); err != nil {
		return nil, err
	}
	return round, nil
}

func (s *stubKeeper) SubmitScore(ctx context.Context, roundID uuid.UUID, player string) (int, error) {
	round, err := s.current(ctx, roundID)
	if err != nil {
		return 0, err
	}
	if player == "-" {
		return 0, service.ErrEmptyPlayer
	}
	s.submitted[roundID] = player
	return round.Finish(ctx)
}

func (s *stubKeeper) Records(_ context.Context, limit int64) (*dmn.Standings, error) {
	s.limit = limit
	return s.standings, nil
}

type headerTokenizer struct{}

func (headerTokenizer) Generate(map[string]interface{}, time.Duration) (string, error) {
	return "", nil
}

// Decode treats the token itself as the round ID.
func (headerTokenizer) Decode(token string) (map[string]interface{}, error) {
	if token == "" {
		return nil, errors.New("empty token")
	}
	return map[string]interface{}{service.ClaimRoundID: token}, nil
}

func newTestHandler(t *testing.T, keeper *stubKeeper) http.Handler {
	t.Helper()
	controller, err := NewRoundController(keeper)
	require.NoError(t, err)
	return api.NewRouter(api.Config{
		BaseURL:                 "/api",
		Mode:                    gin.TestMode,
		Controllers:             []api_i.Controller{controller},
		AuthorizationMiddleware: middleware.Authorize(headerTokenizer{}, service.ClaimRoundID),
	}).Handler()
}

func do(h http.Handler, method, target, token string, body interface{}) *httptest.ResponseRecorder {
	var payload bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&payload).Encode(body)
	}
	req := httptest.NewRequest(method, target, &payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func newKeeper() *stubKeeper {
	return &stubKeeper{
		roundID:   uuid.New(),
		cfg:       session.Config{Cols: 3, Rows: 2, Tile: 100, Thickness: 4, RoundSeconds: 60, FoodCount: 2},
		submitted: make(map[uuid.UUID]string),
	}
}

// newSingleCellKeeper serves a 1x1 maze whose food always sits under the
// player, so every step eats.
func newSingleCellKeeper() *stubKeeper {
	keeper := newKeeper()
	keeper.cfg = session.Config{Cols: 1, Rows: 1, Tile: 100, Thickness: 4, RoundSeconds: 60, FoodCount: 1}
	return keeper
}

func TestStartRound(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		keeper := newKeeper()
		w := do(newTestHandler(t, keeper), http.MethodPost, "/api/v1/rounds", "", nil)
		require.Equal(t, http.StatusCreated, w.Code)

		var response StartRoundResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, keeper.roundID.String(), response.RoundID)
		assert.Equal(t, "token-"+keeper.roundID.String(), response.Token)
		assert.Equal(t, 3, response.Cols)
		assert.Equal(t, 2, response.Rows)
		assert.Len(t, response.Walls, 6)
		assert.Len(t, response.Food, 2)
		assert.Equal(t, 60, response.TimeLeft)
		assert.Equal(t, 60, response.Speed)
		require.NotEmpty(t, response.Path)
		assert.Equal(t, 0, response.Path[0].X)
		assert.Equal(t, 2, response.Path[len(response.Path)-1].X)
	})

	t.Run("service failure", func(t *testing.T) {
		keeper := newKeeper()
		keeper.startErr = errors.New("boom")
		w := do(newTestHandler(t, keeper), http.MethodPost, "/api/v1/rounds", "", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestMove(t *testing.T) {
	keeper := newSingleCellKeeper()
	h := newTestHandler(t, keeper)
	token := keeper.roundID.String()

	t.Run("step eats", func(t *testing.T) {
		w := do(h, http.MethodPost, "/api/v1/rounds/move", token, MoveRequest{})
		require.Equal(t, http.StatusOK, w.Code)

		var response MoveResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.Moved)
		assert.True(t, response.Ate)
		assert.Equal(t, 1, response.Score)
		assert.Len(t, response.Food, 1)
	})

	t.Run("wall blocks", func(t *testing.T) {
		w := do(h, http.MethodPost, "/api/v1/rounds/move", token, MoveRequest{DY: -1})
		require.Equal(t, http.StatusOK, w.Code)

		var response MoveResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.False(t, response.Moved)
	})

	tests := []struct {
		name   string
		token  string
		body   interface{}
		status int
	}{
		{name: "no token", token: "", body: MoveRequest{DX: 1}, status: http.StatusUnauthorized},
		{name: "unknown round", token: uuid.NewString(), body: MoveRequest{DX: 1}, status: http.StatusNotFound},
		{name: "diagonal step", token: token, body: MoveRequest{DX: 1, DY: 1}, status: http.StatusBadRequest},
		{name: "long step", token: token, body: MoveRequest{DX: 51}, status: http.StatusBadRequest},
		{name: "malformed body", token: token, body: "left", status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(h, http.MethodPost, "/api/v1/rounds/move", tt.token, tt.body)
			assert.Equal(t, tt.status, w.Code)
		})
	}

	t.Run("finished round", func(t *testing.T) {
		_, err := keeper.round.Finish(context.Background())
		require.NoError(t, err)

		w := do(h, http.MethodPost, "/api/v1/rounds/move", token, MoveRequest{DX: 1})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestRestartRound(t *testing.T) {
	keeper := newSingleCellKeeper()
	h := newTestHandler(t, keeper)
	token := keeper.roundID.String()

	for range 3 {
		require.Equal(t, http.StatusOK, do(h, http.MethodPost, "/api/v1/rounds/move", token, MoveRequest{}).Code)
	}

	w := do(h, http.MethodPost, "/api/v1/rounds/restart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response RoundState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 2, response.Generation)
	assert.Equal(t, 0, response.Score)
	assert.Equal(t, 60, response.TimeLeft)
	assert.Len(t, response.Walls, 1)
	assert.False(t, response.Over)

	t.Run("unknown round", func(t *testing.T) {
		w := do(h, http.MethodPost, "/api/v1/rounds/restart", uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSubmitScore(t *testing.T) {
	keeper := newSingleCellKeeper()
	h := newTestHandler(t, keeper)
	token := keeper.roundID.String()

	tests := []struct {
		name   string
		token  string
		body   interface{}
		status int
	}{
		{name: "no token", token: "", body: ScoreRequest{Player: "ada"}, status: http.StatusUnauthorized},
		{name: "unknown round", token: uuid.NewString(), body: ScoreRequest{Player: "ada"}, status: http.StatusNotFound},
		{name: "missing player", token: token, body: map[string]int{"score": 1}, status: http.StatusBadRequest},
		{name: "rejected player", token: token, body: ScoreRequest{Player: "-"}, status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(h, http.MethodPost, "/api/v1/rounds/score", tt.token, tt.body)
			assert.Equal(t, tt.status, w.Code)
		})
	}

	t.Run("earned score is accepted", func(t *testing.T) {
		for range 2 {
			require.Equal(t, http.StatusOK, do(h, http.MethodPost, "/api/v1/rounds/move", token, MoveRequest{}).Code)
		}

		w := do(h, http.MethodPost, "/api/v1/rounds/score", token, map[string]interface{}{"player": "ada", "score": 999})
		require.Equal(t, http.StatusAccepted, w.Code)

		var response ScoreResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 2, response.Score)
		assert.Equal(t, "ada", keeper.submitted[keeper.roundID])
	})
}

func TestRecords(t *testing.T) {
	keeper := newKeeper()
	keeper.standings = &dmn.Standings{
		Scores:  []dmn.Score{{Player: "bob", Points: 12}, {Player: "ada", Points: 7}},
		Players: 5,
		Record:  12,
	}
	h := newTestHandler(t, keeper)

	t.Run("default limit", func(t *testing.T) {
		w := do(h, http.MethodGet, "/api/v1/records", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var response dmn.Standings
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, *keeper.standings, response)
		assert.Equal(t, int64(defaultRecordsLimit), keeper.limit)
	})

	t.Run("explicit limit", func(t *testing.T) {
		w := do(h, http.MethodGet, "/api/v1/records?limit=2", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(2), keeper.limit)
	})

	t.Run("bad limit", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, do(h, http.MethodGet, "/api/v1/records?limit=0", "", nil).Code)
		assert.Equal(t, http.StatusBadRequest, do(h, http.MethodGet, "/api/v1/records?limit=x", "", nil).Code)
	})
}
