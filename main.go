package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/maze-runner/api"
	api_i "github.com/beka-birhanu/maze-runner/api/i"
	mazeapi "github.com/beka-birhanu/maze-runner/api/maze"
	"github.com/beka-birhanu/maze-runner/api/middleware"
	roundapi "github.com/beka-birhanu/maze-runner/api/round"
	"github.com/beka-birhanu/maze-runner/config"
	pb "github.com/beka-birhanu/maze-runner/game/pb_encoder"
	logger "github.com/beka-birhanu/maze-runner/infrastruture/log"
	"github.com/beka-birhanu/maze-runner/infrastruture/record"
	"github.com/beka-birhanu/maze-runner/infrastruture/repo"
	"github.com/beka-birhanu/maze-runner/infrastruture/sortedstorage"
	"github.com/beka-birhanu/maze-runner/infrastruture/token"
	"github.com/beka-birhanu/maze-runner/service"
	"github.com/beka-birhanu/maze-runner/service/i"
	"github.com/beka-birhanu/maze-runner/session"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	leaderboardKey    = "maze-runner:leaderboard"
	recordBackendFile = "file"
)

// Global variables for dependencies
var (
	mongoClient     *mongo.Client
	redisClient     *redis.Client
	encoder         i.Encoder
	mazeRepo        i.MazeRepo
	recordStore     i.RecordStore
	leaderboard     i.Leaderboard
	jwtTokenizer    i.Tokenizer
	mazeService     i.MazeCatalog
	roundService    i.RoundKeeper
	mazeController  api_i.Controller
	roundController api_i.Controller
	router          *api.Router
	appLogger       i.Logger
)

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initRepos(client *mongo.Client) {
	mazeRepo = repo.NewMazeRepo(client, config.Envs.DBName, "mazes")
	appLogger.Info("Maze repository initialized")

	if config.Envs.RecordBackend == recordBackendFile {
		recordStore = record.NewFileStore(config.Envs.RecordFile)
		appLogger.Info(fmt.Sprintf("Record store initialized: file %s", config.Envs.RecordFile))
		return
	}
	recordStore = repo.NewRecordRepo(client, config.Envs.DBName, "records")
	appLogger.Info("Record store initialized: mongo")
}

func initLeaderboard(client *redis.Client) {
	leaderboard = sortedstorage.NewRedisLeaderboard(client, leaderboardKey, config.Envs.LeaderboardTTL)
	appLogger.Info("Leaderboard initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initMazeService() {
	mazeLogger, err := logger.New("MAZE-SERVICE", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze service logger: %v", err))
		os.Exit(1)
	}

	mazeService, err = service.NewMazeService(mazeRepo, encoder, mazeLogger, &service.MazeOptions{
		ExtraPassagePercent: config.Envs.ExtraPassagePercent,
		MaxDimension:        config.Envs.MaxMazeDimension,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze service initialized")
}

func initRoundService() {
	roundLogger, err := logger.New("ROUND-SERVICE", config.ColorPurple, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating round service logger: %v", err))
		os.Exit(1)
	}

	roundService, err = service.NewRoundService(jwtTokenizer, leaderboard, recordStore, roundLogger, &service.RoundOptions{
		Round: session.Config{
			Cols:                config.Envs.Cols(),
			Rows:                config.Envs.Rows(),
			Tile:                config.Envs.TileSize,
			Thickness:           config.Envs.WallThickness,
			ExtraPassagePercent: config.Envs.ExtraPassagePercent,
			RoundSeconds:        config.Envs.RoundSeconds,
			FoodCount:           config.Envs.FoodCount,
		},
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating round service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Round service initialized")
}

func initControllers() {
	var err error
	mazeController, err = mazeapi.NewMazeController(mazeService, encoder)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}

	roundController, err = roundapi.NewRoundController(roundService)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating round controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Controllers initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Mode:                    config.Envs.GinMode,
		Controllers:             []api_i.Controller{mazeController, roundController},
		AuthorizationMiddleware: middleware.Authorize(t, service.ClaimRoundID),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	var err error
	appLogger, err = logger.New("APP", config.ColorGreen, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating app logger: %v\n", err)
		os.Exit(1)
	}

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()
	initRedis(ctx)
	defer redisClient.Close()

	encoder = &pb.Protobuf{}
	initRepos(mongoClient)
	initLeaderboard(redisClient)
	initJWTTokenizer()
	initMazeService()
	initRoundService()
	initControllers()
	initRouter(jwtTokenizer)

	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
