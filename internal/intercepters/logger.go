// Package intercepters holds the unary interceptors of the gRPC transport:
// request logging, bearer authentication and client address propagation.
package intercepters

import (
	"context"
	"fmt"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc"
)

// WithLogging logs one entry per finished call. It must run after WithRealIP
// for entries to carry the client address.
func WithLogging(l *zap.Logger) grpc.UnaryServerInterceptor {
	return logging.UnaryServerInterceptor(InterceptorLogger(l), logging.WithLogOnEvents(logging.FinishCall))
}

// InterceptorLogger adapts zap to the go-grpc-middleware logging interface.
// Entries get the client_ip stored by WithRealIP.
func InterceptorLogger(l *zap.Logger) logging.Logger {
	return logging.LoggerFunc(func(ctx context.Context, lvl logging.Level, msg string, fields ...any) {
		zl, ok := levels[lvl]
		if !ok {
			panic(fmt.Sprintf("unknown level %v", lvl))
		}

		ce := l.WithOptions(zap.AddCallerSkip(1)).Check(zl, msg)
		if ce == nil {
			return
		}

		f := make([]zap.Field, 0, len(fields)/2+1)
		if ip := RealIP(ctx); ip != "" {
			f = append(f, zap.String("client_ip", ip))
		}

		for i := 0; i+1 < len(fields); i += 2 {
			key, ok := fields[i].(string)
			if !ok {
				key = fmt.Sprint(fields[i])
			}
			f = append(f, field(key, fields[i+1]))
		}

		ce.Write(f...)
	})
}

var levels = map[logging.Level]zapcore.Level{
	logging.LevelDebug: zapcore.DebugLevel,
	logging.LevelInfo:  zapcore.InfoLevel,
	logging.LevelWarn:  zapcore.WarnLevel,
	logging.LevelError: zapcore.ErrorLevel,
}

func field(key string, v any) zap.Field {
	switch v := v.(type) {
	case string:
		return zap.String(key, v)
	case int:
		return zap.Int(key, v)
	case int64:
		return zap.Int64(key, v)
	case bool:
		return zap.Bool(key, v)
	case time.Duration:
		return zap.Duration(key, v)
	case error:
		return zap.NamedError(key, v)
	default:
		return zap.Any(key, v)
	}
}
