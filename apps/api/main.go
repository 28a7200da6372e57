package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof" // /debug/pprof
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	echoapi "github.com/trezcool/eduroot/apps/api/echo"
	"github.com/trezcool/eduroot/core"
	"github.com/trezcool/eduroot/core/analytics"
	"github.com/trezcool/eduroot/core/content"
	"github.com/trezcool/eduroot/core/order"
	"github.com/trezcool/eduroot/core/quiz"
	"github.com/trezcool/eduroot/core/user"
	emailsvc "github.com/trezcool/eduroot/services/email"
	logsvc "github.com/trezcool/eduroot/services/logger"
	paymentsvc "github.com/trezcool/eduroot/services/payment"
	rediscache "github.com/trezcool/eduroot/storage/cache/redis"
	"github.com/trezcool/eduroot/storage/database"
	sqlxrepos "github.com/trezcool/eduroot/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger.Enable(!conf.Debug)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			dbLogger.Fatal("Failed to close", err)
		}
	}()

	// set up repos
	var quizRepo quiz.Repository = sqlxrepos.NewQuizRepository(db)
	if conf.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     conf.Redis.Addr,
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
		})
		defer func() { _ = rdb.Close() }()
		if err = rdb.Ping(context.Background()).Err(); err != nil {
			logger.Fatal(fmt.Sprintf("connecting to redis: %v", err), err)
		}
		quizRepo = rediscache.NewQuizRepository(rdb, quizRepo, conf.Redis.QuizTTL, logger)
	}

	// set up services
	var (
		mailSvc core.EmailService
		gateway order.PaymentGateway
	)
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf, logger)
		gateway = paymentsvc.NewConsoleGateway(logger, func() string { return uuid.New().String()[:14] })
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
		gateway = paymentsvc.NewRazorpayGateway(conf)
	}

	tokens := user.NewTokenIssuer(conf.SecretKey, conf.JWTExpirationDelta)
	usrSvc := user.NewService(sqlxrepos.NewUserRepository(db), tokens, mailSvc, conf)
	quizSvc := quiz.NewService(quizRepo)
	contentSvc := content.NewService(sqlxrepos.NewContentRepository(db))
	orderSvc := order.NewService(sqlxrepos.NewOrderRepository(db), gateway, mailSvc, conf)
	analyticsSvc := analytics.NewService(sqlxrepos.NewAnalyticsRepository(db))

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:         conf,
			Logger:       logger,
			UserSvc:      usrSvc,
			QuizSvc:      quizSvc,
			ContentSvc:   contentSvc,
			OrderSvc:     orderSvc,
			AnalyticsSvc: analyticsSvc,
			Validate:     validate,
			Translator:   translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	ctx := context.Background()
	if err := database.CreateIfNotExist(ctx, conf); err != nil {
		return nil, err
	}

	db, err := database.Open(ctx, conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db.DB, "up"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
