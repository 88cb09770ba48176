package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	config "github.com/avvvet/copbrazil-services/configs"
	"github.com/avvvet/copbrazil-services/internal/ctlsvc/snapshot"
	natscli "github.com/avvvet/copbrazil-services/internal/nats"
	"github.com/avvvet/copbrazil-services/internal/registrysvc/broker"
	"github.com/avvvet/copbrazil-services/internal/registrysvc/db"
	"github.com/avvvet/copbrazil-services/internal/registrysvc/store"
)

const SERVICE_NAME = "ctl"

var instanceId string

func init() {
	config.LoadEnv(SERVICE_NAME)
	instanceId = config.CreateUniqueInstance(SERVICE_NAME)
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
}

func main() {
	dsn := os.Getenv("POSTGRES_URL")
	if dsn == "" {
		log.Fatal("POSTGRES_URL is required")
	}

	interval := 5 * time.Second
	if v := os.Getenv("SNAPSHOT_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			log.Fatalf("invalid SNAPSHOT_INTERVAL %q", v)
		}
		interval = d
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// pg connection
	dbpool, err := db.Connect(ctx, dsn)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dbpool.Close()
	log.Printf("pg connection established successfully")

	n, err := natscli.Connect(SERVICE_NAME + "_service_" + instanceId)
	if err != nil {
		log.Fatalf("Error: unable to connect to NATS server %v", err)
	}
	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	s := snapshot.NewSnapshotter(store.NewReportStore(dbpool), broker.NewBroker(n.Conn))
	log.Infof("%s service publishing dashboard snapshots every %s", SERVICE_NAME, interval)
	s.Run(ctx, interval)

	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
