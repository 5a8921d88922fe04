package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type blockingWorker struct {
	*BaseWorker
	ignoreStop bool
}

func (w *blockingWorker) Start(ctx context.Context) error {
	if w.ignoreStop {
		<-ctx.Done()
		return nil
	}
	select {
	case <-ctx.Done():
	case <-w.StopChan():
	}
	return nil
}

func TestWorkerManager_NoWorkers(t *testing.T) {
	m := NewWorkerManager(zap.NewNop(), 0)
	assert.Error(t, m.Start(context.Background()))
}

func TestWorkerManager_StartStop(t *testing.T) {
	m := NewWorkerManager(zap.NewNop(), time.Second)
	w := &blockingWorker{BaseWorker: NewBaseWorker("blocking", zap.NewNop())}
	m.Register(w)

	require.NoError(t, m.Start(context.Background()))
	require.NoError(t, m.Stop())
	assert.True(t, w.IsStopped())

	// повторная остановка безопасна
	assert.NoError(t, w.Stop())
}

func TestWorkerManager_StopTimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewWorkerManager(zap.NewNop(), 50*time.Millisecond)
	m.Register(&blockingWorker{BaseWorker: NewBaseWorker("stuck", zap.NewNop()), ignoreStop: true})

	require.NoError(t, m.Start(ctx))
	assert.Error(t, m.Stop())
}
