package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	config "github.com/avvvet/copbrazil-services/configs"
	"github.com/avvvet/copbrazil-services/internal/auditsvc/broker"
	"github.com/avvvet/copbrazil-services/internal/auditsvc/store"
	"github.com/avvvet/copbrazil-services/internal/comm"
	"github.com/avvvet/copbrazil-services/internal/db"
	natscli "github.com/avvvet/copbrazil-services/internal/nats"
)

const SERVICE_NAME = "audit"

var instanceId string

func init() {
	config.LoadEnv(SERVICE_NAME)
	instanceId = config.CreateUniqueInstance(SERVICE_NAME)
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
}

func main() {
	retentionDays := 90
	if v := os.Getenv("AUDIT_RETENTION_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			log.Fatalf("Invalid AUDIT_RETENTION_DAYS value: %q", v)
		}
		retentionDays = n
	}

	// mongo connection
	mongoDB, err := db.ConnectToDB(context.Background(), os.Getenv("MONGODB_URI"))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoDB.Client().Disconnect(context.Background())
	log.Printf("mongo connection established successfully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.CreateTTLIndexForCollection(ctx, mongoDB, store.Collection); err != nil {
		cancel()
		log.Fatalf("Failed to create TTL index on %s: %v", store.Collection, err)
	}
	cancel()

	auditStore := store.NewAuditStore(mongoDB, time.Duration(retentionDays)*24*time.Hour)

	// connect to NATS
	n, err := natscli.Connect(SERVICE_NAME + "_service_" + instanceId)
	if err != nil {
		log.Fatalf("unable to connect to NATS: %v", err)
	}
	defer n.Conn.Close()
	log.Infof("NATS connected at %s", n.Url)

	b := broker.NewBroker(n.Conn, auditStore)
	sub, err := b.QueueSubscribe(comm.RegistrySubject, "audit")
	if err != nil {
		log.Fatalf("unable to subscribe to %s: %v", comm.RegistrySubject, err)
	}
	log.Infof("%s service recording %s (retention %d days)", SERVICE_NAME, comm.RegistrySubject, retentionDays)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	if err := sub.Drain(); err != nil {
		log.Warnf("drain subscription: %v", err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
