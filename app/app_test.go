package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeServer struct {
	startErr error
	stopped  chan struct{}
}

func (f *fakeServer) Start(ctx context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}
	<-ctx.Done()
	close(f.stopped)
	return nil
}

func (f *fakeServer) Stop(context.Context) error { return nil }

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestRunStopsOnCancel(t *testing.T) {
	srv := &fakeServer{stopped: make(chan struct{})}
	var order []int
	a := New("test", quiet(),
		WithServer(srv),
		WithCleanup(func() { order = append(order, 1) }),
		WithCleanup(func() { order = append(order, 2) }),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.NoError(t, a.Run(ctx))
	<-srv.stopped
	assert.Equal(t, []int{2, 1}, order)
}

func TestRunStopsOthersOnFailure(t *testing.T) {
	healthy := &fakeServer{stopped: make(chan struct{})}
	boom := errors.New("listen failed")
	a := New("test", quiet(), WithServer(healthy, &fakeServer{startErr: boom}))

	err := a.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	select {
	case <-healthy.stopped:
	case <-time.After(time.Second):
		t.Fatal("healthy server was not stopped")
	}
}
