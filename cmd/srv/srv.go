package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spinmall/backend/config"
	"github.com/spinmall/backend/internal/domain"
	"github.com/spinmall/backend/internal/entity"
	"github.com/spinmall/backend/internal/model"
	"github.com/spinmall/backend/internal/repository"
	"github.com/spinmall/backend/pkg/authenticator"
	"github.com/spinmall/backend/pkg/crypto"
	"github.com/spinmall/backend/pkg/logger"
	"github.com/spinmall/backend/pkg/router"
	"github.com/spinmall/backend/pkg/xcontext"
	"github.com/spinmall/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context

	configs     *config.Configs
	logger      logger.Logger
	db          *gorm.DB
	redisClient xredis.Client

	userRepo        repository.UserRepository
	lotteryRepo     repository.LotteryRepository
	pointLogRepo    repository.PointLogRepository
	bannerRepo      repository.BannerRepository
	applicationRepo repository.ApplicationRepository
	productRepo     repository.ProductRepository

	authDomain        domain.AuthDomain
	userDomain        domain.UserDomain
	lotteryDomain     domain.LotteryDomain
	pointDomain       domain.PointDomain
	bannerDomain      domain.BannerDomain
	applicationDomain domain.ApplicationDomain
	productDomain     domain.ProductDomain

	router *router.Router
}

func (s *srv) load(cliCtx *cli.Context) error {
	if err := s.loadConfig(cliCtx); err != nil {
		return err
	}

	s.loadLogger()

	if err := s.loadDatabase(); err != nil {
		return err
	}

	s.loadCtx()

	if err := s.loadRedis(); err != nil {
		return err
	}

	return nil
}

func (s *srv) loadConfig(cliCtx *cli.Context) error {
	tokenSecret := getEnv("TOKEN_SECRET", "")
	if tokenSecret == "" {
		// Without a configured secret, tokens stop verifying across restarts.
		generated, err := crypto.GenerateRandomString()
		if err != nil {
			return err
		}

		tokenSecret = generated
	}

	configs := config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			Database: getEnv("MYSQL_DATABASE", "spinmall"),
			User:     getEnv("MYSQL_USER", "spinmall"),
			Password: getEnv("MYSQL_PASSWORD", "spinmall"),
		},
		ApiServer: config.APIServerConfigs{
			Host:         getEnv("HOST", ""),
			Port:         getEnv("PORT", "8080"),
			Cert:         getEnv("SERVER_CERT", ""),
			Key:          getEnv("SERVER_KEY", ""),
			MaxLimit:     50,
			DefaultLimit: 10,
		},
		Auth: config.AuthConfigs{
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Secret:     tokenSecret,
				Expiration: getEnvDuration("TOKEN_EXPIRATION", 24*time.Hour),
			},
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDR", ""),
		},
		Lottery: config.LotteryConfigs{
			MaxDrawAttempts:  3,
			DrawRetryBackoff: 50 * time.Millisecond,
			ActivityCacheTTL: time.Minute,
		},
	}

	if path := cliCtx.String("config"); path != "" {
		if _, err := toml.DecodeFile(path, &configs); err != nil {
			return err
		}
	}

	s.configs = &configs
	return nil
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
}

func (s *srv) loadDatabase() error {
	db, err := gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		return err
	}

	s.db = db
	return nil
}

func (s *srv) loadCtx() {
	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, *s.configs)
	ctx = xcontext.WithLogger(ctx, s.logger)
	ctx = xcontext.WithDB(ctx, s.db)
	ctx = xcontext.WithTokenEngine(ctx,
		authenticator.NewTokenEngine[model.AccessToken](s.configs.Auth.AccessToken))

	s.ctx = ctx
}

// loadRedis is optional. Without an address the activity cache is disabled
// and every read goes to the database.
func (s *srv) loadRedis() error {
	if s.configs.Redis.Addr == "" {
		s.logger.Infof("No redis address is configured, the activity cache is off")
		return nil
	}

	client, err := xredis.NewClient(s.ctx)
	if err != nil {
		return err
	}

	s.redisClient = client
	return nil
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.lotteryRepo = repository.NewLotteryRepository(s.redisClient)
	s.pointLogRepo = repository.NewPointLogRepository()
	s.bannerRepo = repository.NewBannerRepository()
	s.applicationRepo = repository.NewApplicationRepository()
	s.productRepo = repository.NewProductRepository()
}

func (s *srv) loadDomains() {
	s.authDomain = domain.NewAuthDomain(s.userRepo)
	s.userDomain = domain.NewUserDomain(s.userRepo, s.pointLogRepo)
	s.lotteryDomain = domain.NewLotteryDomain(s.lotteryRepo, s.userRepo, s.pointLogRepo)
	s.pointDomain = domain.NewPointDomain(s.userRepo, s.pointLogRepo)
	s.bannerDomain = domain.NewBannerDomain(s.bannerRepo, s.userRepo)
	s.applicationDomain = domain.NewApplicationDomain(s.applicationRepo, s.userRepo)
	s.productDomain = domain.NewProductDomain(s.productRepo, s.userRepo, s.pointLogRepo)
}

func (s *srv) migrate(cliCtx *cli.Context) error {
	if err := s.loadConfig(cliCtx); err != nil {
		return err
	}

	s.loadLogger()

	if err := s.loadDatabase(); err != nil {
		return err
	}

	s.loadCtx()
	return entity.MigrateTable(s.ctx)
}

func (s *srv) startServer() error {
	cfg := s.configs.ApiServer
	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: s.router.Handler(),
	}

	s.logger.Infof("Starting api server on %s", addr)
	if cfg.Cert != "" && cfg.Key != "" {
		return server.ListenAndServeTLS(cfg.Cert, cfg.Key)
	}

	return server.ListenAndServe()
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}

	return d
}
