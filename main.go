package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-depths/api"
	dungeonapi "github.com/beka-birhanu/vinom-depths/api/dungeon"
	api_i "github.com/beka-birhanu/vinom-depths/api/i"
	"github.com/beka-birhanu/vinom-depths/api/identity"
	"github.com/beka-birhanu/vinom-depths/config"
	"github.com/beka-birhanu/vinom-depths/infrastruture/leaderboard"
	logger "github.com/beka-birhanu/vinom-depths/infrastruture/log"
	"github.com/beka-birhanu/vinom-depths/infrastruture/repo"
	"github.com/beka-birhanu/vinom-depths/infrastruture/token"
	"github.com/beka-birhanu/vinom-depths/service"
	"github.com/beka-birhanu/vinom-depths/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const runReapInterval = time.Minute

// Global variables for dependencies
var (
	mongoClient   *mongo.Client
	redisClient   *redis.Client
	runRepo       i.RunRepo
	scoreBoard    i.Leaderboard
	jwtTokenizer  i.Tokenizer
	runManager    *service.RunManager
	runController api_i.Controller
	router        *api.Router
	appLogger     *logger.Logger
)

func initMongo(ctx context.Context) {
	if config.Envs.DBHost == "" {
		appLogger.Warning("DB_HOST not set, run history disabled")
		return
	}

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

func initRunRepo(ctx context.Context) {
	if mongoClient == nil {
		return
	}

	r := repo.NewRunRepo(mongoClient, config.Envs.DBName, "runs")
	if err := r.EnsureIndexes(ctx); err != nil {
		appLogger.Warning(fmt.Sprintf("Creating run indexes: %v", err))
	}
	runRepo = r
	appLogger.Info("Run repository initialized")
}

func initRedis(ctx context.Context) {
	if config.Envs.RedisAddr == "" {
		appLogger.Warning("REDIS_ADDR not set, leaderboard disabled")
		return
	}

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

func initLeaderboard() {
	if redisClient == nil {
		return
	}

	scoreBoard = leaderboard.NewRedisLeaderboard(redisClient, config.Envs.LeaderboardKey, config.Envs.LeaderboardTTLSeconds)
	appLogger.Info("Leaderboard initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initRunManager() {
	runLogger, err := logger.New("RUN-MANAGER", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating run manager logger: %v", err))
		os.Exit(1)
	}

	runManager, err = service.NewRunManager(&service.Config{
		BoardSize:   config.Envs.BoardSize,
		MaxAttempts: config.Envs.GenMaxAttempts,
		TokenTTL:    time.Duration(config.Envs.RunTokenTTLMinutes) * time.Minute,
		Tokenizer:   jwtTokenizer,
		Leaderboard: scoreBoard,
		RunRepo:     runRepo,
		Logger:      runLogger,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating run manager: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Run manager initialized")
}

func initRunController() {
	var err error
	runController, err = dungeonapi.NewRunController(runManager)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating run controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Run controller initialized")
}

func initRouter(t i.Tokenizer) {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{runController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	// Initialize dependencies
	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)

	initMongo(ctx)
	if mongoClient != nil {
		defer func() {
			_ = mongoClient.Disconnect(context.Background())
		}()
	}
	initRunRepo(ctx)

	initRedis(ctx)
	if redisClient != nil {
		defer redisClient.Close()
	}
	initLeaderboard()

	initJWTTokenizer()
	initRunManager()

	reaperCtx, stopReaper := context.WithCancel(context.Background())
	defer stopReaper()
	go runManager.Reaper(reaperCtx, runReapInterval)

	initRunController()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
