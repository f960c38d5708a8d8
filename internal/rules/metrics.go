package rules

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ruleFiredTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "foodex2",
	Subsystem: "rules",
	Name:      "fired_total",
	Help:      "Business rule warnings fired, by rule id and severity.",
}, []string{"rule", "severity"})
