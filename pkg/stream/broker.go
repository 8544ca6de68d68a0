package stream

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Broker is the resumable-stream transport. Every frame of an in-flight
// generation is appended to a Redis list (the replay buffer) and published on
// a Redis channel (the live feed). A subscriber replays the buffer first,
// then follows the live feed, deduplicating on frame sequence numbers - so a
// client can reattach mid-generation and see every token exactly once.
//
// Buffers expire after the configured TTL, which also bounds how long a dead
// stream stays resumable.
type Broker struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewBroker(rdb *redis.Client, ttl time.Duration) *Broker {
	return &Broker{rdb: rdb, ttl: ttl}
}

func bufferKey(streamId string) string {
	return "chatstream:" + streamId
}

func channelKey(streamId string) string {
	return "chatstream:live:" + streamId
}

// Exists reports whether a replay buffer is present for the stream.
func (b *Broker) Exists(ctx context.Context, streamId string) (bool, error) {
	n, err := b.rdb.Exists(ctx, bufferKey(streamId)).Result()
	if err != nil {
		return false, fmt.Errorf("check stream buffer: %w", err)
	}
	return n > 0, nil
}

// Writer appends frames to one stream. Not safe for concurrent use; the
// generation goroutine is the only writer of its stream.
type Writer struct {
	broker   *Broker
	streamId string
	seq      int64
}

func (b *Broker) NewWriter(streamId string) *Writer {
	return &Writer{broker: b, streamId: streamId}
}

func (w *Writer) publish(ctx context.Context, f Frame) error {
	w.seq++
	f.Seq = w.seq

	raw, err := f.encode()
	if err != nil {
		return err
	}

	pipe := w.broker.rdb.TxPipeline()
	pipe.RPush(ctx, bufferKey(w.streamId), raw)
	pipe.Expire(ctx, bufferKey(w.streamId), w.broker.ttl)
	pipe.Publish(ctx, channelKey(w.streamId), raw)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish frame: %w", err)
	}
	return nil
}

// Token appends one text delta.
func (w *Writer) Token(ctx context.Context, content string) error {
	return w.publish(ctx, Frame{Type: FrameToken, Content: content})
}

// Done marks normal completion.
func (w *Writer) Done(ctx context.Context) error {
	return w.publish(ctx, Frame{Type: FrameDone})
}

// Fail marks the stream as terminally failed. The client receives the error
// over the same channel as the tokens instead of inferring it from silence.
func (w *Writer) Fail(ctx context.Context, message string) error {
	return w.publish(ctx, Frame{Type: FrameError, Message: message})
}

// Subscribe attaches to a stream: buffered frames are replayed first, then
// live frames follow until a terminal frame or context cancellation. The
// returned channel is closed when the stream ends.
func (b *Broker) Subscribe(ctx context.Context, streamId string) (<-chan Frame, error) {
	// Subscribe before replaying so no frame falls between the two.
	pubsub := b.rdb.Subscribe(ctx, channelKey(streamId))
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("subscribe stream: %w", err)
	}

	buffered, err := b.rdb.LRange(ctx, bufferKey(streamId), 0, -1).Result()
	if err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("replay stream buffer: %w", err)
	}

	out := make(chan Frame, 64)

	go func() {
		defer close(out)
		defer pubsub.Close()

		var lastSeq int64
		for _, raw := range buffered {
			f, err := decodeFrame([]byte(raw))
			if err != nil {
				continue
			}
			lastSeq = f.Seq
			select {
			case out <- f:
			case <-ctx.Done():
				return
			}
			if f.Terminal() {
				return
			}
		}

		live := pubsub.Channel()
		for {
			select {
			case msg, ok := <-live:
				if !ok {
					return
				}
				f, err := decodeFrame([]byte(msg.Payload))
				if err != nil {
					continue
				}
				if f.Seq <= lastSeq {
					continue // already replayed
				}
				lastSeq = f.Seq
				select {
				case out <- f:
				case <-ctx.Done():
					return
				}
				if f.Terminal() {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
