package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"

	config "github.com/avvvet/copbrazil-services/configs"
	natscli "github.com/avvvet/copbrazil-services/internal/nats"
	"github.com/avvvet/copbrazil-services/internal/registrysvc/backend"
	"github.com/avvvet/copbrazil-services/internal/registrysvc/broker"
	svcconfig "github.com/avvvet/copbrazil-services/internal/registrysvc/config"
	handlers "github.com/avvvet/copbrazil-services/internal/registrysvc/handlers"
	"github.com/avvvet/copbrazil-services/internal/registrysvc/service"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "registry"

var instanceId string

func init() {
	config.LoadEnv(SERVICE_NAME)
	instanceId = config.CreateUniqueInstance(SERVICE_NAME)
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
}

func main() {
	cfg := svcconfig.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	b, err := backend.Open(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to open %s backend: %v", cfg.DataBackend, err)
	}
	defer b.Close()

	// change events are optional, the API works without NATS
	var publisher broker.Publisher = broker.Noop{}
	if natscli.Enabled() {
		n, err := natscli.Connect(SERVICE_NAME + "_service_" + instanceId)
		if err != nil {
			log.Fatalf("Error: unable to connect to NATS server %v", err)
		}
		defer n.Conn.Close()
		log.Printf("NATS connection established successfully %s", n.Url)
		publisher = broker.NewBroker(n.Conn)
	} else {
		log.Warn("NATS_URL not set, registry events are not published")
	}

	driverService := service.NewDriverService(b.Drivers, publisher)
	contributionService := service.NewContributionService(b.Contributions, b.Drivers, publisher)
	reportService := service.NewReportService(b.Reports)

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	r.Use(httprate.LimitByIP(cfg.RateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(driverService, contributionService, reportService)
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s (%s backend)", SERVICE_NAME, server.Addr, cfg.DataBackend)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
