package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"novapanel/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type mockRunner struct {
	mu     sync.Mutex
	orders []string
	err    error
}

func (m *mockRunner) ConfirmAndProvision(ctx context.Context, orderID string) (*model.ProvisioningResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, orderID)
	if m.err != nil {
		return nil, m.err
	}
	return &model.ProvisioningResult{ServerID: 1}, nil
}

func (m *mockRunner) seen() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.orders...)
}

func TestProvisionerRunsEnqueuedJobs(t *testing.T) {
	runner := &mockRunner{}
	p := NewProvisioner(0, 4, zerolog.Nop())

	done := make(chan string, 2)
	p.SetCompletionHook(func(orderID string, err error) {
		assert.NoError(t, err)
		done <- orderID
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx, runner)

	assert.True(t, p.Enqueue("NOVA_1"))
	assert.True(t, p.Enqueue("NOVA_2"))

	var got []string
	for i := 0; i < 2; i++ {
		select {
		case id := <-done:
			got = append(got, id)
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for jobs")
		}
	}

	assert.ElementsMatch(t, []string{"NOVA_1", "NOVA_2"}, got)
	assert.ElementsMatch(t, []string{"NOVA_1", "NOVA_2"}, runner.seen())
}

func TestProvisionerReportsRunnerError(t *testing.T) {
	runner := &mockRunner{err: ErrAlreadyProvisioned}
	p := NewProvisioner(0, 1, zerolog.Nop())

	done := make(chan error, 1)
	p.SetCompletionHook(func(orderID string, err error) {
		done <- err
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx, runner)

	p.Enqueue("NOVA_1")

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrAlreadyProvisioned)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for job")
	}
}

func TestProvisionerDropsWhenQueueFull(t *testing.T) {
	p := NewProvisioner(time.Hour, 1, zerolog.Nop())

	assert.True(t, p.Enqueue("NOVA_1"))
	assert.False(t, p.Enqueue("NOVA_2"))
}

func TestProvisionerStopsOnContextCancel(t *testing.T) {
	runner := &mockRunner{}
	p := NewProvisioner(0, 1, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		p.Run(ctx, runner)
		close(stopped)
	}()

	cancel()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancel")
	}
	assert.Empty(t, runner.seen())
}
