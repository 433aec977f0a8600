package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sleipnirhttp/sleipnir/internal/config"
	"github.com/sleipnirhttp/sleipnir/internal/logging"
	"github.com/sleipnirhttp/sleipnir/middleware"
	"github.com/sleipnirhttp/sleipnir/request"
	"github.com/sleipnirhttp/sleipnir/response"
	"github.com/sleipnirhttp/sleipnir/router"
	"github.com/sleipnirhttp/sleipnir/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := logging.Init(cfg)
	if err != nil {
		log.Fatalf("could not set up logging: %v", err)
	}

	root := router.New()
	root.Get("/health", func(r *request.Request, res *response.Response, s *middleware.Session) {
		res.Text("ok")
		s.Proceed()
	})
	root.Get("/panic", func(r *request.Request, res *response.Response, s *middleware.Session) {
		panic("deliberate crash to demo fault containment")
	})

	api := router.New()
	api.Get("/users/:id",
		middleware.RequestID(),
		func(r *request.Request, res *response.Response, s *middleware.Session) {
			res.Header("content-type", "application/json")
			fmt.Fprintf(res, `{"user": %q}`, r.Params["id"])
			s.Proceed()
		},
		middleware.AccessLogColored(),
	)
	api.Post("/users",
		middleware.BasicAuth([]middleware.Account{{Username: "admin", Password: "swordfish"}}),
		func(r *request.Request, res *response.Response, s *middleware.Session) {
			res.Status(response.StatusCreated).Text("created: " + string(r.Body))
			s.Proceed()
		},
		middleware.AccessLogColored(),
	)

	srv := server.New(server.Opts{
		Address:   cfg.Address,
		Workers:   cfg.Workers,
		QueueSize: cfg.QueueSize,
		Logger:    logger,
	})
	srv.Register("/", root)
	srv.Register("/api", api)

	go func() {
		// a bind failure is a startup precondition, abort loudly
		if err := srv.Listen(cfg.Port); err != nil {
			logger.WithError(err).Fatal("server stopped")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	srv.Close()
	logger.Info("server stopped")
}
