package interceptor

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	customctx "github.com/nestjam/yap-sequencer/internal/context"
)

// LogInterceptor пишет в лог сведения о каждом унарном вызове.
type LogInterceptor struct {
	logger *zap.Logger
}

// NewLog создает перехватчик логирования.
func NewLog(logger *zap.Logger) *LogInterceptor {
	return &LogInterceptor{logger: logger}
}

// Handle обрабатывает унарный вызов.
//
//nolint:lll // default interceptor func type
func (i *LogInterceptor) Handle(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	fields := []zap.Field{
		zap.String("method", info.FullMethod),
		zap.String("code", status.Code(err).String()),
		zap.Duration("duration", time.Since(start)),
	}
	if user, ok := customctx.GetUser(ctx); ok {
		fields = append(fields, zap.Stringer("user", user.ID))
	}
	i.logger.Info("call served", fields...)

	return resp, err
}
