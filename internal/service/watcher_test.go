package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessages struct {
	ch        chan kafka.Message
	committed []int64
	commitErr error
}

func newFakeMessages(values ...string) *fakeMessages {
	f := &fakeMessages{ch: make(chan kafka.Message, len(values))}
	for i, v := range values {
		f.ch <- kafka.Message{Offset: int64(i), Value: []byte(v)}
	}
	close(f.ch)
	return f
}

func (f *fakeMessages) Messages() <-chan kafka.Message { return f.ch }

func (f *fakeMessages) CommitOffset(_ context.Context, msg kafka.Message) error {
	f.committed = append(f.committed, msg.Offset)
	return f.commitErr
}

func event(bucket, key string) string {
	return `{"Records":[{"eventName":"s3:ObjectCreated:Put","s3":{"bucket":{"name":"` + bucket + `"},"object":{"key":"` + key + `"}}}]}`
}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestParseNotification(t *testing.T) {
	refs, err := ParseNotification([]byte(event("servicemap", "data%2Fservices.json")))
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, ObjectRef{EventName: "s3:ObjectCreated:Put", Bucket: "servicemap", Key: "data/services.json"}, refs[0])

	_, err = ParseNotification([]byte(`{"Records":[]}`))
	assert.Error(t, err)

	_, err = ParseNotification([]byte(`not json`))
	assert.Error(t, err)
}

func TestWatcher_Run(t *testing.T) {
	msgs := newFakeMessages(
		event("servicemap", "data%2Fservices.json"),
		event("servicemap", "data%2Fother.json"),
		"garbage",
		event("elsewhere", "data/services.json"),
		event("servicemap", "data/services.json"),
	)

	calls := 0
	w := NewWatcher(msgs, "servicemap", "data/services.json", func(context.Context) { calls++ }, discard())

	reloads := w.Run(context.Background())

	assert.Equal(t, 2, reloads)
	assert.Equal(t, 2, calls)
	assert.Equal(t, []int64{0, 1, 2, 3, 4}, msgs.committed)
}

func TestWatcher_CommitFailureDoesNotStop(t *testing.T) {
	msgs := newFakeMessages(event("b", "k"), event("b", "k"))
	msgs.commitErr = errors.New("rebalance in progress")

	w := NewWatcher(msgs, "b", "k", func(context.Context) {}, discard())

	assert.Equal(t, 2, w.Run(context.Background()))
}

func TestWatcher_StopsOnContext(t *testing.T) {
	msgs := &fakeMessages{ch: make(chan kafka.Message)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := NewWatcher(msgs, "b", "k", func(context.Context) { t.Fatal("unexpected reload") }, discard())

	assert.Zero(t, w.Run(ctx))
}
