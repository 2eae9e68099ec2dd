// Package service reacts to storage events. Its Watcher consumes MinIO
// bucket notifications from Kafka and reloads the services dataset when the
// watched object changes.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/minio/minio-go/v7/pkg/notification"
	"github.com/segmentio/kafka-go"
)

type Watcher struct {
	msgs   MessageIterator
	bucket string
	key    string
	reload ReloadFunc
	log    *slog.Logger
}

// NewWatcher reloads via reload whenever bucket/key shows up in a notification.
func NewWatcher(msgs MessageIterator, bucket, key string, reload ReloadFunc, log *slog.Logger) *Watcher {
	if log == nil {
		log = slog.Default()
	}
	return &Watcher{
		msgs:   msgs,
		bucket: bucket,
		key:    key,
		reload: reload,
		log:    log.With(slog.String("component", "reload_watcher")),
	}
}

// Run processes messages until the iterator is drained or ctx is done and
// returns the number of reloads triggered. Every message is committed once
// handled, including ones that are malformed or about other objects.
func (w *Watcher) Run(ctx context.Context) int {
	reloads := 0
	for {
		var (
			msg kafka.Message
			ok  bool
		)
		select {
		case <-ctx.Done():
			return reloads
		case msg, ok = <-w.msgs.Messages():
			if !ok {
				return reloads
			}
		}

		refs, err := ParseNotification(msg.Value)
		if err != nil {
			w.log.Warn("notification_invalid", slog.String("error", err.Error()))
		} else if w.matches(refs) {
			w.log.Info("services_object_changed",
				slog.String("bucket", w.bucket),
				slog.String("key", w.key),
			)
			w.reload(ctx)
			reloads++
		}

		if err := w.msgs.CommitOffset(ctx, msg); err != nil {
			w.log.Warn("commit_failed", slog.String("error", err.Error()))
		}
	}
}

func (w *Watcher) matches(refs []ObjectRef) bool {
	for _, ref := range refs {
		if ref.Bucket == w.bucket && ref.Key == w.key {
			return true
		}
	}
	return false
}

// ParseNotification decodes a MinIO notification and returns the objects it
// refers to, with URL-escaped keys decoded.
func ParseNotification(data []byte) ([]ObjectRef, error) {
	var info notification.Info
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("decode notification: %w", err)
	}
	if len(info.Records) == 0 {
		return nil, fmt.Errorf("notification has no records")
	}

	refs := make([]ObjectRef, 0, len(info.Records))
	for _, rec := range info.Records {
		key, err := url.QueryUnescape(rec.S3.Object.Key)
		if err != nil {
			return nil, fmt.Errorf("decode object key %q: %w", rec.S3.Object.Key, err)
		}
		refs = append(refs, ObjectRef{
			EventName: string(rec.EventName),
			Bucket:    rec.S3.Bucket.Name,
			Key:       key,
		})
	}
	return refs, nil
}
