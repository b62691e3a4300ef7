package handler

import (
	"errors"
	"net/http"

	"novapanel/internal/dto"
	"novapanel/internal/model"
	"novapanel/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func httpError(err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidPlan),
		errors.Is(err, service.ErrPaymentNotConfirmed),
		errors.Is(err, service.ErrAlreadyProvisioned):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrOrderNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrPaymentGateway),
		errors.Is(err, service.ErrProvisioning):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return err
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.PlanTier == "" || req.PanelName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "plan_tier and panel_name are required")
	}

	order, qrURL, err := h.orderService.CreateOrder(ctx, req.PlanTier, req.PanelName)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, &dto.CreateOrderResponse{
		OrderID:          order.OrderID,
		PlanTier:         order.PlanTier,
		Amount:           order.Amount,
		Status:           order.Status,
		PaymentReference: order.PaymentReference,
		QRISPayload:      order.QRISPayload,
		QRImageURL:       qrURL,
	})
}

func (h *OrderHandler) GetOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	orderID := c.Param("orderID")

	status, err := h.orderService.GetOrderStatus(ctx, orderID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, &dto.OrderStatusResponse{
		OrderID: orderID,
		Status:  string(status),
	})
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	orderID := c.Param("orderID")

	order, err := h.orderService.GetOrder(ctx, orderID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Provision(c echo.Context) error {
	ctx := c.Request().Context()
	orderID := c.Param("orderID")

	result, err := h.orderService.ConfirmAndProvision(ctx, orderID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, &dto.ProvisionResponse{
		OrderID:    orderID,
		Username:   result.Username,
		Password:   result.Password,
		Email:      result.Email,
		ServerID:   result.ServerID,
		ServerName: result.ServerName,
		PanelURL:   result.PanelURL,
		RAM:        model.FormatQuotaMB(result.RAMMB),
		Disk:       model.FormatQuotaMB(result.DiskMB),
		CPU:        model.FormatQuotaPercent(result.CPUPercent),
	})
}

func (h *OrderHandler) SyncOrders(c echo.Context) error {
	ctx := c.Request().Context()

	report, err := h.orderService.SyncPendingOrders(ctx)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, &dto.SyncOrdersResponse{
		TotalPending: report.TotalPending,
		Synced:       report.Synced,
		Enqueued:     report.Enqueued,
	})
}
