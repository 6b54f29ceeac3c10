package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AuditStampsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_stamps_total",
			Help: "Total number of audit stamps issued by kind and caller type",
		},
		[]string{"kind", "caller"},
	)

	AuditStampRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_stamps_rejected_total",
			Help: "Total number of audit stamps rejected by reason",
		},
		[]string{"reason"},
	)
)
