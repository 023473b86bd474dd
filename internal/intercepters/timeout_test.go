package intercepters_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"github.com/atinyakov/shortlink-registry/internal/intercepters"
)

func TestWithTimeout(t *testing.T) {
	info := &grpc.UnaryServerInfo{FullMethod: "/shortener.v1.Registry/Resolve"}
	deadlineOf := func(ctx context.Context, req any) (any, error) {
		d, ok := ctx.Deadline()
		if !ok {
			return nil, nil
		}
		return d, nil
	}

	t.Run("client without deadline", func(t *testing.T) {
		start := time.Now()
		got, err := intercepters.WithTimeout(time.Second)(context.Background(), nil, info, deadlineOf)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.WithinDuration(t, start.Add(time.Second), got.(time.Time), 100*time.Millisecond)
	})

	t.Run("shorter client deadline kept", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		want, _ := ctx.Deadline()

		got, err := intercepters.WithTimeout(time.Minute)(ctx, nil, info, deadlineOf)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("slow handler is cut off", func(t *testing.T) {
		slow := func(ctx context.Context, req any) (any, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(5 * time.Second):
				return "late", nil
			}
		}

		_, err := intercepters.WithTimeout(20*time.Millisecond)(context.Background(), nil, info, slow)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
