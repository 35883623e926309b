package app

import (
	"os"
	"os/signal"
	"syscall"

	"freelance-market-api/internal/config"
	"freelance-market-api/internal/controller"
	"freelance-market-api/internal/identity"
	"freelance-market-api/internal/repo"
	"freelance-market-api/internal/service"
	"freelance-market-api/pkg/http_server"
	"freelance-market-api/pkg/postgres"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/labstack/echo"
	"github.com/sirupsen/logrus"
)

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	return log
}

func runMigrations(pg *postgres.Postgres, sourceUrl string, databaseName string, log *logrus.Logger) {
	driver, err := pgmigrate.WithInstance(pg.Database, &pgmigrate.Config{DatabaseName: databaseName})
	if err != nil {
		log.WithError(err).Fatal("failed to create migration driver")
	}

	migrations, err := migrate.NewWithDatabaseInstance(sourceUrl, databaseName, driver)
	if err != nil {
		log.WithError(err).Fatal("failed to load migrations")
	}

	if err := migrations.Up(); err != nil && err != migrate.ErrNoChange {
		log.WithError(err).Fatal("migration failed")
	}
}

func Run() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	log := newLogger(cfg.LogLevel)

	log.Info("connecting to database")
	postgresDB, err := postgres.NewDB(cfg.PostgresConn)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer postgresDB.Close()

	log.Info("running migrations")
	runMigrations(postgresDB, cfg.MigrationURL, cfg.PostgresDB, log)

	repositories := repo.NewRepositories(postgresDB)
	services := service.NewServices(repositories, postgresDB, log)
	tokens := identity.NewManager(cfg.JWTSecret)

	handler := echo.New()
	controller.SetupRoutesHandlers(handler, services, tokens)

	log.WithField("address", cfg.ServerAddress).Info("starting server")
	httpServer := http_server.New(handler, cfg.ServerAddress)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.WithField("signal", s.String()).Info("got signal")
	case err = <-httpServer.Notify():
		log.WithError(err).Error("server stopped")
	}

	log.Info("shutting down")
	if err := httpServer.Shutdown(); err != nil {
		log.WithError(err).Error("shutdown error")

		return
	}
	log.Info("successful shutdown")
}
