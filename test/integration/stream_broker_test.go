package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"ai-chathub-be/pkg/stream"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("Skipping integration test: REDIS_URL not set")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		t.Skipf("Skipping integration test: Redis unreachable: %v", err)
	}
	return rdb
}

func TestBrokerReplayThenLive(t *testing.T) {
	rdb := newTestRedis(t)
	defer rdb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	broker := stream.NewBroker(rdb, time.Minute)
	streamId := uuid.New().String()
	writer := broker.NewWriter(streamId)

	// Frames written before anyone subscribes must replay in order.
	require.NoError(t, writer.Token(ctx, "Hello"))
	require.NoError(t, writer.Token(ctx, ", "))

	frames, err := broker.Subscribe(ctx, streamId)
	require.NoError(t, err)

	// Frames written after subscription arrive live.
	require.NoError(t, writer.Token(ctx, "world"))
	require.NoError(t, writer.Done(ctx))

	var got []string
	var sawDone bool
	for f := range frames {
		switch f.Type {
		case stream.FrameToken:
			got = append(got, f.Content)
		case stream.FrameDone:
			sawDone = true
		}
	}

	assert.Equal(t, []string{"Hello", ", ", "world"}, got)
	assert.True(t, sawDone)
}

func TestBrokerLateSubscriberSeesFullBuffer(t *testing.T) {
	rdb := newTestRedis(t)
	defer rdb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	broker := stream.NewBroker(rdb, time.Minute)
	streamId := uuid.New().String()
	writer := broker.NewWriter(streamId)

	require.NoError(t, writer.Token(ctx, "already"))
	require.NoError(t, writer.Token(ctx, " finished"))
	require.NoError(t, writer.Done(ctx))

	exists, err := broker.Exists(ctx, streamId)
	require.NoError(t, err)
	assert.True(t, exists)

	// Subscribing after completion behaves like a resume: full replay, then
	// the terminal frame closes the channel.
	frames, err := broker.Subscribe(ctx, streamId)
	require.NoError(t, err)

	var got string
	for f := range frames {
		if f.Type == stream.FrameToken {
			got += f.Content
		}
	}
	assert.Equal(t, "already finished", got)
}

func TestBrokerFailureFrame(t *testing.T) {
	rdb := newTestRedis(t)
	defer rdb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	broker := stream.NewBroker(rdb, time.Minute)
	streamId := uuid.New().String()
	writer := broker.NewWriter(streamId)

	require.NoError(t, writer.Token(ctx, "partial"))
	require.NoError(t, writer.Fail(ctx, "upstream gave up"))

	frames, err := broker.Subscribe(ctx, streamId)
	require.NoError(t, err)

	var last stream.Frame
	for f := range frames {
		last = f
	}
	assert.Equal(t, stream.FrameError, last.Type)
	assert.Equal(t, "upstream gave up", last.Message)
}
