package service

import (
	"context"
	"errors"
	"time"

	"novapanel/internal/model"

	"github.com/rs/zerolog"
)

// ProvisionRunner is the subset of the order service the worker drives.
type ProvisionRunner interface {
	ConfirmAndProvision(ctx context.Context, orderID string) (*model.ProvisioningResult, error)
}

// Provisioner runs deferred provisioning jobs. Webhook handling enqueues an
// order id and answers immediately; the worker waits the configured delay and
// then provisions, so the webhook response never races the panel API.
type Provisioner struct {
	delay  time.Duration
	jobs   chan string
	log    zerolog.Logger
	onDone func(orderID string, err error)
}

func NewProvisioner(delay time.Duration, queueSize int, log zerolog.Logger) *Provisioner {
	return &Provisioner{
		delay: delay,
		jobs:  make(chan string, queueSize),
		log:   log,
	}
}

// SetCompletionHook registers a callback invoked after every job, with the
// error ConfirmAndProvision returned (nil on success).
func (p *Provisioner) SetCompletionHook(fn func(orderID string, err error)) {
	p.onDone = fn
}

// Enqueue schedules a provisioning attempt. Reports false when the queue is
// full; the order stays provisionable via the sync sweep or a manual call.
func (p *Provisioner) Enqueue(orderID string) bool {
	select {
	case p.jobs <- orderID:
		return true
	default:
		p.log.Warn().Str("order_id", orderID).Msg("provision queue full, dropping job")
		return false
	}
}

func (p *Provisioner) Run(ctx context.Context, runner ProvisionRunner) {
	for {
		select {
		case <-ctx.Done():
			return
		case orderID, ok := <-p.jobs:
			if !ok {
				return
			}

			if p.delay > 0 {
				select {
				case <-ctx.Done():
					return
				case <-time.After(p.delay):
				}
			}

			res, err := runner.ConfirmAndProvision(ctx, orderID)
			switch {
			case err == nil:
				p.log.Info().
					Str("order_id", orderID).
					Int("server_id", res.ServerID).
					Msg("deferred provisioning succeeded")
			case errors.Is(err, ErrAlreadyProvisioned):
				p.log.Debug().Str("order_id", orderID).Msg("order already provisioned")
			case errors.Is(err, ErrPaymentNotConfirmed):
				p.log.Warn().Str("order_id", orderID).Msg("deferred provisioning ran before payment confirmed")
			default:
				p.log.Error().Err(err).Str("order_id", orderID).Msg("deferred provisioning failed")
			}

			if p.onDone != nil {
				p.onDone(orderID, err)
			}
		}
	}
}
