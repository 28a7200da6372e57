package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/eduroot/core"
	"github.com/trezcool/eduroot/core/quiz"
	"github.com/trezcool/eduroot/core/user"
	logsvc "github.com/trezcool/eduroot/services/logger"
	"github.com/trezcool/eduroot/storage/database"
	sqlxrepos "github.com/trezcool/eduroot/storage/database/sqlx"
)

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up DB
	ctx := context.Background()
	if err := database.CreateIfNotExist(ctx, conf); err != nil {
		logger.Fatal(fmt.Sprintf("creating database: %v", err), err)
	}
	db, err := database.Open(ctx, conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening database: %v", err), err)
	}

	validate := validator.New()
	_en := en.New()
	translator, _ := ut.New(_en, _en).GetTranslator("en")
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	// start CLI
	cli := commandLine{
		db:       db.DB,
		usrSvc:   user.NewService(sqlxrepos.NewUserRepository(db), user.NewTokenIssuer(conf.SecretKey, conf.JWTExpirationDelta), nil, conf),
		quizSvc:  quiz.NewService(sqlxrepos.NewQuizRepository(db)),
		validate: validate,
		out:      os.Stdout,
	}
	err = cli.run(os.Args[1:])
	_ = db.Close()
	if err != nil {
		logger.Error(fmt.Sprintf("error: %v", err), err)
		os.Exit(1)
	}
}
