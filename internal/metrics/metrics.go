package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "novapanel_orders_created_total",
		Help: "Orders accepted with a pending QRIS payment.",
	})

	PaymentsConfirmed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "novapanel_payments_confirmed_total",
		Help: "Orders whose status transitioned to paid.",
	})

	PanelsProvisioned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "novapanel_panels_provisioned_total",
		Help: "Panel accounts and servers successfully created.",
	})

	WebhooksReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "novapanel_webhooks_received_total",
		Help: "Structurally valid payment webhooks received.",
	})
)
