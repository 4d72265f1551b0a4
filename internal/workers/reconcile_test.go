package workers_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/conduit-feed/domain"
	"github.com/Guyuepp/conduit-feed/domain/mocks"
	"github.com/Guyuepp/conduit-feed/internal/workers"
)

func TestRunOnceReconcilesCountedKinds(t *testing.T) {
	counter := new(mocks.CounterUsecase)
	counter.On("Reconcile", mock.Anything, domain.Favorite).Return(nil).Once()
	counter.On("Reconcile", mock.Anything, domain.Follow).Return(nil).Once()

	w := workers.NewReconcileWorker(counter, time.Minute, time.Second)
	require.NoError(t, w.RunOnce(context.Background()))
	counter.AssertExpectations(t)
	counter.AssertNotCalled(t, "Reconcile", mock.Anything, domain.Bookmark)
}

func TestRunOnceContinuesPastFailure(t *testing.T) {
	counter := new(mocks.CounterUsecase)
	counter.On("Reconcile", mock.Anything, domain.Favorite).Return(errors.New("deadlock")).Once()
	counter.On("Reconcile", mock.Anything, domain.Follow).Return(nil).Once()

	w := workers.NewReconcileWorker(counter, time.Minute, time.Second)
	err := w.RunOnce(context.Background())
	assert.ErrorContains(t, err, "favorite: deadlock")
	counter.AssertExpectations(t)
}

func TestStartTicksUntilCancelled(t *testing.T) {
	counter := new(mocks.CounterUsecase)
	ticked := make(chan struct{}, 16)
	counter.On("Reconcile", mock.Anything, mock.Anything).Return(nil).Run(func(mock.Arguments) {
		select {
		case ticked <- struct{}{}:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		workers.NewReconcileWorker(counter, 10*time.Millisecond, time.Second).Start(ctx)
		close(done)
	}()

	select {
	case <-ticked:
	case <-time.After(2 * time.Second):
		t.Fatal("worker never ran")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestStartDisabled(t *testing.T) {
	counter := new(mocks.CounterUsecase)
	// 返回即表示禁用
	workers.NewReconcileWorker(counter, 0, time.Second).Start(context.Background())
	counter.AssertNotCalled(t, "Reconcile", mock.Anything, mock.Anything)
}
