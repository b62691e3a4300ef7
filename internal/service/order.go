package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"novapanel/internal/client"
	"novapanel/internal/dto"
	"novapanel/internal/metrics"
	"novapanel/internal/model"
	"novapanel/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var (
	ErrInvalidPlan         = errors.New("invalid plan tier")
	ErrOrderNotFound       = errors.New("order not found")
	ErrPaymentGateway      = errors.New("payment gateway failure")
	ErrPaymentNotConfirmed = errors.New("payment not confirmed")
	ErrAlreadyProvisioned  = errors.New("panel already provisioned")
	ErrProvisioning        = errors.New("panel provisioning failure")
	ErrInvalidWebhook      = errors.New("webhook missing order id")
)

// Orders materialized from a webhook for an unknown order id carry this
// amount when neither the webhook nor the gateway reports one.
const fallbackAmount = 500

// ProvisionQueue schedules a deferred provisioning attempt for an order.
type ProvisionQueue interface {
	Enqueue(orderID string) bool
}

type OrderService interface {
	CreateOrder(ctx context.Context, planTier, panelName string) (*model.Order, string, error)
	GetOrder(ctx context.Context, orderID string) (*model.Order, error)
	GetOrderStatus(ctx context.Context, orderID string) (model.OrderStatus, error)
	ConfirmAndProvision(ctx context.Context, orderID string) (*model.ProvisioningResult, error)
	HandleWebhook(ctx context.Context, payload *dto.PaymentWebhook) error
	SyncPendingOrders(ctx context.Context) (*SyncReport, error)
}

type SyncReport struct {
	TotalPending int
	Synced       int
	Enqueued     int
}

type orderServiceImpl struct {
	orderRepo   repository.OrderRepository
	pakasir     client.PakasirClient
	pterodactyl client.PterodactylClient
	telegram    client.TelegramClient
	queue       ProvisionQueue
	prices      map[string]int
	log         zerolog.Logger

	// one mutex per order id, so unrelated purchases never serialize
	locks sync.Map
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	pakasir client.PakasirClient,
	pterodactyl client.PterodactylClient,
	telegram client.TelegramClient,
	queue ProvisionQueue,
	prices map[string]int,
	log zerolog.Logger,
) OrderService {
	return &orderServiceImpl{
		orderRepo:   orderRepo,
		pakasir:     pakasir,
		pterodactyl: pterodactyl,
		telegram:    telegram,
		queue:       queue,
		prices:      prices,
		log:         log,
	}
}

func (s *orderServiceImpl) lockOrder(orderID string) func() {
	v, _ := s.locks.LoadOrStore(orderID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func newOrderID() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("NOVA_%d_%s", time.Now().UnixMilli(), suffix)
}

func (s *orderServiceImpl) CreateOrder(ctx context.Context, planTier, panelName string) (*model.Order, string, error) {
	tier, ok := model.CanonicalTier(planTier)
	if !ok {
		return nil, "", fmt.Errorf("%w: %q", ErrInvalidPlan, planTier)
	}

	amount, ok := s.prices[string(tier)]
	if !ok || amount <= 0 {
		return nil, "", fmt.Errorf("%w: tier %q has no positive price", ErrInvalidPlan, tier)
	}

	orderID := newOrderID()

	payment, err := s.pakasir.CreateQRISPayment(ctx, orderID, amount)
	if err != nil {
		return nil, "", fmt.Errorf("%w: create payment: %v", ErrPaymentGateway, err)
	}

	order := &model.Order{
		OrderID:          orderID,
		PanelName:        panelName,
		PlanTier:         string(tier),
		Amount:           amount,
		Status:           string(model.StatusPending),
		PaymentReference: payment.PaymentNumber,
		QRISPayload:      payment.QRISPayload,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, "", fmt.Errorf("store order: %w", err)
	}

	metrics.OrdersCreated.Inc()
	s.log.Info().
		Str("order_id", orderID).
		Str("plan_tier", string(tier)).
		Int("amount", amount).
		Msg("order created")

	return order, s.pakasir.QRImageURL(payment.QRISPayload), nil
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	order, err := s.orderRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return order, nil
}

func (s *orderServiceImpl) GetOrderStatus(ctx context.Context, orderID string) (model.OrderStatus, error) {
	unlock := s.lockOrder(orderID)
	defer unlock()

	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return "", err
	}

	status, err := s.pakasir.CheckStatus(ctx, orderID)
	if err != nil {
		return "", fmt.Errorf("%w: check status: %v", ErrPaymentGateway, err)
	}

	if err := s.applyStatus(ctx, order, status.Status); err != nil {
		return "", err
	}

	return model.OrderStatus(order.Status), nil
}

// applyStatus persists a normalized status onto the order. Pending is the
// only state that moves; paid and expired are terminal.
func (s *orderServiceImpl) applyStatus(ctx context.Context, order *model.Order, next model.OrderStatus) error {
	if model.OrderStatus(order.Status) != model.StatusPending || next == model.StatusPending {
		return nil
	}

	if err := s.orderRepo.UpdateStatus(ctx, order.OrderID, next); err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	order.Status = string(next)

	if next == model.StatusPaid {
		metrics.PaymentsConfirmed.Inc()
	}
	s.log.Info().
		Str("order_id", order.OrderID).
		Str("status", string(next)).
		Msg("order status updated")
	return nil
}

func (s *orderServiceImpl) ConfirmAndProvision(ctx context.Context, orderID string) (*model.ProvisioningResult, error) {
	unlock := s.lockOrder(orderID)
	defer unlock()

	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if model.OrderStatus(order.Status) != model.StatusPaid {
		// The local record may be stale; the gateway is authoritative.
		status, err := s.pakasir.CheckStatus(ctx, orderID)
		if err != nil {
			return nil, fmt.Errorf("%w: check status: %v", ErrPaymentGateway, err)
		}
		if err := s.applyStatus(ctx, order, status.Status); err != nil {
			return nil, err
		}
		if model.OrderStatus(order.Status) != model.StatusPaid {
			return nil, fmt.Errorf("%w: status is %s", ErrPaymentNotConfirmed, order.Status)
		}
	}

	if order.PanelProvisioned {
		return nil, ErrAlreadyProvisioned
	}

	tier, ok := model.CanonicalTier(order.PlanTier)
	if !ok {
		return nil, fmt.Errorf("%w: order has tier %q", ErrInvalidPlan, order.PlanTier)
	}

	user, err := s.pterodactyl.CreateUser(ctx, order.PanelName)
	if err != nil {
		return nil, fmt.Errorf("%w: create user: %v", ErrProvisioning, err)
	}

	server, err := s.pterodactyl.CreateServer(ctx, user.ID, tier, order.PanelName)
	if err != nil {
		return nil, fmt.Errorf("%w: create server: %v", ErrProvisioning, err)
	}

	result := &model.ProvisioningResult{
		UserID:           user.ID,
		Username:         user.Username,
		Password:         user.Password,
		Email:            user.Email,
		ServerID:         server.ID,
		ServerIdentifier: server.Identifier,
		ServerName:       server.Name,
		PanelURL:         server.PanelURL,
		RAMMB:            server.RAMMB,
		DiskMB:           server.DiskMB,
		CPUPercent:       server.CPUPercent,
	}

	if err := s.orderRepo.MarkProvisioned(ctx, orderID, result); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlreadyProvisioned
		}
		// The panel exists remotely but the record still says otherwise.
		// Surface the server id so the mismatch can be reconciled by hand.
		s.log.Error().
			Err(err).
			Str("order_id", orderID).
			Int("server_id", server.ID).
			Msg("provisioned panel but failed to persist result")
		return nil, fmt.Errorf("%w: persist result: %v", ErrProvisioning, err)
	}

	metrics.PanelsProvisioned.Inc()
	s.log.Info().
		Str("order_id", orderID).
		Str("username", user.Username).
		Int("server_id", server.ID).
		Msg("panel provisioned")

	s.notifyPanelCreated(ctx, order, result)

	return result, nil
}

// notifyPanelCreated posts the owner notification. Failures are logged and
// swallowed; the notification is a side channel and never fails the request.
func (s *orderServiceImpl) notifyPanelCreated(ctx context.Context, order *model.Order, res *model.ProvisioningResult) {
	provisioned := *order
	provisioned.PanelProvisioned = true
	provisioned.PanelUserID = res.UserID
	provisioned.PanelUsername = res.Username
	provisioned.PanelPassword = res.Password
	provisioned.PanelEmail = res.Email
	provisioned.ServerID = res.ServerID
	provisioned.ServerIdentifier = res.ServerIdentifier
	provisioned.ServerName = res.ServerName
	provisioned.PanelURL = res.PanelURL
	provisioned.RAMMB = res.RAMMB
	provisioned.DiskMB = res.DiskMB
	provisioned.CPUPercent = res.CPUPercent

	if err := s.telegram.NotifyPanelCreated(ctx, &provisioned); err != nil {
		s.log.Warn().
			Err(err).
			Str("order_id", order.OrderID).
			Msg("telegram notification failed")
	}
}

func (s *orderServiceImpl) HandleWebhook(ctx context.Context, payload *dto.PaymentWebhook) error {
	if payload == nil || payload.OrderID == "" {
		return ErrInvalidWebhook
	}

	metrics.WebhooksReceived.Inc()

	unlock := s.lockOrder(payload.OrderID)
	defer unlock()

	order, err := s.orderRepo.FindByOrderID(ctx, payload.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.reconcileUnknownOrder(ctx, payload)
		}
		return fmt.Errorf("find order: %w", err)
	}

	if err := s.applyStatus(ctx, order, model.NormalizeStatus(payload.Status)); err != nil {
		return err
	}

	if model.OrderStatus(order.Status) == model.StatusPaid && !order.PanelProvisioned {
		s.queue.Enqueue(order.OrderID)
	}

	return nil
}

// reconcileUnknownOrder materializes a local record for an order id the
// gateway knows about but we do not, e.g. after a restart with a fresh store.
func (s *orderServiceImpl) reconcileUnknownOrder(ctx context.Context, payload *dto.PaymentWebhook) error {
	status, err := s.pakasir.CheckStatus(ctx, payload.OrderID)
	if err != nil {
		s.log.Warn().
			Err(err).
			Str("order_id", payload.OrderID).
			Msg("webhook for unknown order, gateway lookup failed")
		return nil
	}

	amount := status.Amount
	if amount <= 0 {
		amount = payload.Amount
	}
	if amount <= 0 {
		amount = fallbackAmount
	}

	order := &model.Order{
		OrderID: payload.OrderID,
		Amount:  amount,
		Status:  string(status.Status),
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return fmt.Errorf("store reconciled order: %w", err)
	}

	s.log.Info().
		Str("order_id", payload.OrderID).
		Str("status", string(status.Status)).
		Msg("materialized order from webhook")
	return nil
}

func (s *orderServiceImpl) SyncPendingOrders(ctx context.Context) (*SyncReport, error) {
	pending, err := s.orderRepo.ListByStatus(ctx, model.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending orders: %w", err)
	}

	report := &SyncReport{TotalPending: len(pending)}
	for _, order := range pending {
		status, err := s.pakasir.CheckStatus(ctx, order.OrderID)
		if err != nil {
			s.log.Warn().
				Err(err).
				Str("order_id", order.OrderID).
				Msg("sync: gateway lookup failed")
			continue
		}
		if status.Status == model.StatusPending {
			continue
		}

		unlock := s.lockOrder(order.OrderID)
		err = s.applyStatus(ctx, order, status.Status)
		unlock()
		if err != nil {
			return nil, err
		}
		report.Synced++

		if status.Status == model.StatusPaid && !order.PanelProvisioned {
			if s.queue.Enqueue(order.OrderID) {
				report.Enqueued++
			}
		}
	}

	return report, nil
}
