package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/nestjam/yap-sequencer/internal/cert"
	conf "github.com/nestjam/yap-sequencer/internal/config"
	env "github.com/nestjam/yap-sequencer/internal/config/environment"
	"github.com/nestjam/yap-sequencer/internal/domain/service"
	"github.com/nestjam/yap-sequencer/internal/factory"
	"github.com/nestjam/yap-sequencer/internal/interceptor"
	"github.com/nestjam/yap-sequencer/internal/numeral"
	grpcserver "github.com/nestjam/yap-sequencer/internal/server/grpc"
	httpserver "github.com/nestjam/yap-sequencer/internal/server/http"
)

const (
	eventKey        = "event"
	shutdownTimeout = 5 * time.Second
)

func main() {
	config, err := conf.Load(os.Args, env.New())
	if err != nil {
		panic(err)
	}

	logger, tearDownLogger := factory.NewLogger(config.LogLevel)
	defer tearDownLogger()

	alphabet, err := numeral.NewAlphabet(config.DefaultSymbols)
	if err != nil {
		logger.Fatal(err.Error(), zap.String(eventKey, "parse default alphabet"))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, tearDownStorage := factory.NewStorage(ctx, config, logger)
	defer tearDownStorage()

	doneCh := make(chan struct{})
	defer close(doneCh)

	remover := service.NewSequenceRemover(ctx, doneCh, store, logger)
	httpHandler := httpserver.New(store,
		httpserver.WithLogger(logger),
		httpserver.WithTakeMaxCount(config.TakeMaxCount),
		httpserver.WithDefaultAlphabet(alphabet),
		httpserver.WithSequenceRemover(remover),
		httpserver.WithTrustedSubnet(config.TrustedSubnet),
		httpserver.WithSecretKey(config.SecretKey))

	grpcHandler := grpcserver.New(store,
		grpcserver.WithLogger(logger),
		grpcserver.WithTakeMaxCount(config.TakeMaxCount),
		grpcserver.WithDefaultAlphabet(alphabet),
		grpcserver.WithSecretKey(config.SecretKey))

	httpServer := &http.Server{
		Addr:              config.ServerAddress,
		Handler:           httpHandler,
		ReadHeaderTimeout: shutdownTimeout,
	}
	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(
		interceptor.NewAuth(grpcHandler.UserAuth()).Handle,
		interceptor.NewLog(logger).Handle,
	))
	grpcserver.Register(grpcServer, grpcHandler)

	go listenAndServe(httpServer, config.EnableHTTPS, logger)
	go serveGRPC(grpcServer, config.GRPCAddress, logger)

	<-ctx.Done()
	logger.Info("Shutting down servers")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error(err.Error(), zap.String(eventKey, "shutdown http server"))
	}
	grpcServer.GracefulStop()

	logger.Info("Servers stopped")
}

func listenAndServe(server *http.Server, enableHTTPS bool, logger *zap.Logger) {
	logger.Info("Running http server",
		zap.String("address", server.Addr),
		zap.Bool("https", enableHTTPS))

	var err error
	if enableHTTPS {
		server.TLSConfig, err = cert.TLSConfig()
		if err != nil {
			logger.Fatal(err.Error(), zap.String(eventKey, "generate certificate"))
		}
		err = server.ListenAndServeTLS("", "")
	} else {
		err = server.ListenAndServe()
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal(err.Error(), zap.String(eventKey, "start http server"))
	}
}

func serveGRPC(server *grpc.Server, address string, logger *zap.Logger) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		logger.Fatal(err.Error(), zap.String(eventKey, "listen grpc address"))
	}

	logger.Info("Running grpc server", zap.String("address", address))
	if err := server.Serve(listener); err != nil {
		logger.Fatal(err.Error(), zap.String(eventKey, "start grpc server"))
	}
}
