package rdx

import (
	"context"
	"testing"
	"time"
)

func TestFlushRedisLikesStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		FlushRedisLikes(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("flush worker did not stop after context cancel")
	}
}
