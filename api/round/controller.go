package roundapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/maze-runner/api/middleware"
	dmn "github.com/beka-birhanu/maze-runner/domain"
	"github.com/beka-birhanu/maze-runner/service"
	"github.com/beka-birhanu/maze-runner/service/i"
	"github.com/beka-birhanu/maze-runner/session"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultRecordsLimit = 10
	maxRecordsLimit     = 100
)

// RoundController manages round lifecycle requests.
type RoundController struct {
	keeper i.RoundKeeper
}

// NewRoundController initializes a RoundController.
func NewRoundController(rk i.RoundKeeper) (*RoundController, error) {
	if rk == nil {
		return nil, service.ErrMissingDependency
	}
	return &RoundController{keeper: rk}, nil
}

// RegisterPublic registers public routes.
func (rc *RoundController) RegisterPublic(route *gin.RouterGroup) {
	route.POST("/rounds", rc.start)
	route.GET("/records", rc.records)
}

// RegisterProtected registers protected routes.
func (rc *RoundController) RegisterProtected(route *gin.RouterGroup) {
	rounds := route.Group("/rounds")
	{
		rounds.POST("/move", rc.move)
		rounds.POST("/restart", rc.restart)
		rounds.POST("/score", rc.submit)
	}
}

// start opens a new round.
func (rc *RoundController) start(ctx *gin.Context) {
	ID, token, round, err := rc.keeper.StartRound(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while starting round"})
		return
	}

	ctx.JSON(http.StatusCreated, &StartRoundResponse{
		RoundID:    ID.String(),
		Token:      token,
		RoundState: toRoundState(round),
	})
}

// move steps the player of the round named by the token.
func (rc *RoundController) move(ctx *gin.Context) {
	var request MoveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	roundID, ok := roundIDOf(ctx)
	if !ok {
		return
	}

	round, moved, ate, err := rc.keeper.Move(ctx, roundID, request.DX, request.DY)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, &MoveResponse{
		Moved:  moved,
		Ate:    ate,
		Player: round.Player(),
		Food:   round.Food(),
		Score:  round.Score(),
		Speed:  round.Speed(),
	})
}

// restart stores the record and starts the round over on a new maze.
func (rc *RoundController) restart(ctx *gin.Context) {
	roundID, ok := roundIDOf(ctx)
	if !ok {
		return
	}

	round, err := rc.keeper.RestartRound(ctx, roundID)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, toRoundState(round))
}

// submit closes the round named by the token and stores its score.
func (rc *RoundController) submit(ctx *gin.Context) {
	var request ScoreRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	roundID, ok := roundIDOf(ctx)
	if !ok {
		return
	}

	score, err := rc.keeper.SubmitScore(ctx, roundID, request.Player)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusAccepted, &ScoreResponse{Score: score})
}

// records lists the leaderboard head and the all-time record.
func (rc *RoundController) records(ctx *gin.Context) {
	limit := defaultRecordsLimit
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxRecordsLimit {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
			return
		}
		limit = n
	}

	standings, err := rc.keeper.Records(ctx, int64(limit))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading records"})
		return
	}

	ctx.JSON(http.StatusOK, standings)
}

// roundIDOf reads the round ID the authorization middleware stored. It
// answers the request itself when the ID is missing.
func roundIDOf(ctx *gin.Context) (uuid.UUID, bool) {
	value, _ := ctx.Get(middleware.ContextRoundID)
	roundID, ok := value.(uuid.UUID)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "round token required"})
	}
	return roundID, ok
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, dmn.ErrRoundNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrRoundOver):
		return http.StatusConflict
	case errors.Is(err, service.ErrEmptyPlayer), errors.Is(err, session.ErrInvalidStep):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func toRoundState(round *session.Round) RoundState {
	snap := round.Snapshot()
	walls := make([]int, len(snap.Maze.Cells))
	for idx, c := range snap.Maze.Cells {
		walls[idx] = int(c.WallMask())
	}

	return RoundState{
		Generation: snap.Generation,
		Cols:       snap.Maze.Cols,
		Rows:       snap.Maze.Rows,
		Walls:      walls,
		Path:       snap.Path.Positions(),
		Player:     round.Player(),
		Food:       round.Food(),
		Score:      round.Score(),
		TimeLeft:   round.TimeLeft(),
		Speed:      round.Speed(),
		Record:     round.Record(),
		Over:       round.IsOver(),
	}
}
