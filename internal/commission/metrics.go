package commission

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	commissionsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shinepos",
		Name:      "commissions_created_total",
		Help:      "Commission logs created, by source (manual or subscription).",
	}, []string{"source"})

	commissionsPaid = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "shinepos",
		Name:      "commissions_paid_total",
		Help:      "Commission logs moved from pending to paid.",
	})

	subscriptions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "shinepos",
		Name:      "restaurant_subscriptions_total",
		Help:      "Restaurant subscription events processed.",
	})
)
