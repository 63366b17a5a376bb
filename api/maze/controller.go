package mazeapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	dmn "github.com/beka-birhanu/maze-runner/domain"
	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/beka-birhanu/maze-runner/pathfinder"
	"github.com/beka-birhanu/maze-runner/service"
	"github.com/beka-birhanu/maze-runner/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	formatProtobuf  = "protobuf"
	contentProtobuf = "application/x-protobuf"
)

var errBadPosition = errors.New("position must look like x,y")

// MazeController serves maze generation and path queries.
type MazeController struct {
	catalog i.MazeCatalog
	encoder i.Encoder
}

// NewMazeController initializes a MazeController.
func NewMazeController(mc i.MazeCatalog, enc i.Encoder) (*MazeController, error) {
	if mc == nil || enc == nil {
		return nil, service.ErrMissingDependency
	}
	return &MazeController{
		catalog: mc,
		encoder: enc,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", mc.create)
		mazes.GET("/:ID", mc.maze)
		mazes.GET("/:ID/path", mc.path)
	}
}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {}

// create handles maze generation requests.
func (mc *MazeController) create(ctx *gin.Context) {
	var request CreateMazeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, m, err := mc.catalog.Generate(ctx, request.Cols, request.Rows, request.Seed)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, toMazeResponse(doc, m))
}

// maze returns a stored maze as JSON or as protobuf bytes.
func (mc *MazeController) maze(ctx *gin.Context) {
	ID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid maze id"})
		return
	}

	doc, m, err := mc.catalog.Maze(ctx, ID)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	if ctx.Query("format") == formatProtobuf {
		ctx.Data(http.StatusOK, contentProtobuf, doc.Layout)
		return
	}
	ctx.JSON(http.StatusOK, toMazeResponse(doc, m))
}

// path returns the shortest route between two cells of a stored maze.
func (mc *MazeController) path(ctx *gin.Context) {
	ID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid maze id"})
		return
	}

	from, err := parsePosition(ctx.Query("from"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	to, err := parsePosition(ctx.Query("to"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, path, err := mc.catalog.Path(ctx, ID, from, to)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	if ctx.Query("format") == formatProtobuf {
		b, err := mc.encoder.MarshalPath(m, path)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while encoding path"})
			return
		}
		ctx.Data(http.StatusOK, contentProtobuf, b)
		return
	}

	ctx.JSON(http.StatusOK, &PathResponse{
		Length: path.Len(),
		Cells:  path.Positions(),
	})
}

// parsePosition reads "x,y". An empty value yields nil.
func parsePosition(raw string) (*maze.Position, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return nil, errBadPosition
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, errBadPosition
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, errBadPosition
	}
	return &maze.Position{X: x, Y: y}, nil
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, dmn.ErrMazeNotFound):
		return http.StatusNotFound
	case errors.Is(err, maze.ErrInvalidDimension),
		errors.Is(err, service.ErrDimensionTooLarge),
		errors.Is(err, pathfinder.ErrInvalidCell):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func toMazeResponse(doc *dmn.MazeDocument, m *maze.Maze) *MazeResponse {
	walls := make([]int, len(m.Cells))
	for idx, c := range m.Cells {
		walls[idx] = int(c.WallMask())
	}
	return &MazeResponse{
		ID:    doc.ID.String(),
		Cols:  m.Cols,
		Rows:  m.Rows,
		Seed:  doc.Seed,
		Walls: walls,
	}
}
