package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"artisan-directory/internal/artisan"
	"artisan-directory/internal/config"
	"artisan-directory/internal/contact"
	"artisan-directory/internal/events"
	"artisan-directory/internal/logging"
	"artisan-directory/internal/media"
	"artisan-directory/internal/mongostore"
	"artisan-directory/internal/obs"
	"artisan-directory/internal/service"
	grpctransport "artisan-directory/internal/transport/grpc"
	httptransport "artisan-directory/internal/transport/http"
)

const (
	serviceName = "artisans-api"
	version     = "0.1.0"
)

type publisher interface {
	service.Publisher
	Close() error
}

type stores struct {
	artisans artisan.Repository
	contacts contact.Repository
	ping     func(context.Context) error
	close    func(context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := obs.InitTracer(ctx, serviceName, version, cfg.OTLPEndpoint)
	if err != nil {
		logger.Fatal("init tracer", zap.Error(err))
	}

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("open store", zap.Error(err))
	}
	uploader := newUploader(cfg, logger)
	pub := newPublisher(cfg, logger)

	artisanService := service.NewArtisanService(st.artisans, uploader, pub, logger)
	contactService := service.NewContactService(st.contacts, pub, logger)

	router := httptransport.NewRouter(artisanService, contactService, logger, httptransport.Options{
		ServiceName:    serviceName,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Ping:           st.ping,
	})
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcServer, healthServer := grpctransport.NewServer()
	grpcListener, err := net.Listen("tcp", cfg.GRPCAddr())
	if err != nil {
		logger.Fatal("listen", zap.String("addr", cfg.GRPCAddr()), zap.Error(err))
	}
	grpctransport.SetServing(healthServer, true)

	errCh := make(chan error, 2)

	go func() {
		logger.Info("gRPC ops server listening", zap.String("addr", cfg.GRPCAddr()))
		if err := grpcServer.Serve(grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errCh <- err
		}
	}()

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	graceCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace())
	defer cancel()

	stop()
	grpctransport.SetServing(healthServer, false)

	shutdown(graceCtx, grpcServer, httpServer, logger)

	if err := pub.Close(); err != nil {
		logger.Warn("close event publisher", zap.Error(err))
	}
	if err := st.close(graceCtx); err != nil {
		logger.Warn("close store", zap.Error(err))
	}
	if err := shutdownTracer(graceCtx); err != nil {
		logger.Warn("flush traces", zap.Error(err))
	}
	logger.Info("servers shut down cleanly")
}

func openStores(ctx context.Context, cfg config.Config, logger *zap.Logger) (stores, error) {
	if cfg.StoreDriver == config.StoreMemory {
		logger.Warn("using in-memory store; records are lost on restart")
		return stores{
			artisans: artisan.NewMemoryStore(),
			contacts: contact.NewMemoryStore(),
			close:    func(context.Context) error { return nil },
		}, nil
	}

	client, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return stores{}, err
	}
	logger.Info("connected to mongodb", zap.String("database", cfg.MongoDatabase))
	return stores{
		artisans: mongostore.NewArtisanStore(client.Database()),
		contacts: mongostore.NewContactStore(client.Database()),
		ping:     client.Ping,
		close:    client.Disconnect,
	}, nil
}

func newUploader(cfg config.Config, logger *zap.Logger) service.Uploader {
	creds := media.Credentials{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
	}
	uploader, err := media.NewCloudinary(creds, cfg.UploadFolder)
	if err != nil {
		logger.Warn("image uploads disabled", zap.Error(err))
		return media.Disabled{}
	}
	return uploader
}

func newPublisher(cfg config.Config, logger *zap.Logger) publisher {
	if cfg.AMQPURL == "" {
		return events.Nop{}
	}
	pub, err := events.Dial(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		logger.Warn("event publishing disabled", zap.Error(err))
		return events.Nop{}
	}
	logger.Info("publishing events", zap.String("exchange", cfg.AMQPExchange))
	return pub
}

func shutdown(ctx context.Context, grpcServer *grpc.Server, httpServer *http.Server, logger *zap.Logger) {
	done := make(chan struct{})

	go func() {
		grpcServer.GracefulStop()
		close(done)
	}()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Warn("http graceful shutdown failed", zap.Error(err))
	}

	select {
	case <-done:
	case <-ctx.Done():
		logger.Warn("forcing gRPC shutdown")
		grpcServer.Stop()
	}
}
