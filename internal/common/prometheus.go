package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	QuestSlotRerollTotal       = "quest_slot_reroll_total"
	QuestCompletionTotal       = "quest_completion_total"
	PurchaseTotal              = "purchase_total"
	EventConsumedTotal         = "event_consumed_total"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"path", "code"}),
		QuestSlotRerollTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: QuestSlotRerollTotal,
			Help: "Count of quest slot rerolls",
		}, []string{"cadence"}),
		QuestCompletionTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: QuestCompletionTotal,
			Help: "Count of quest completions by status",
		}, []string{"status"}),
		PurchaseTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: PurchaseTotal,
			Help: "Count of shop purchases",
		}, []string{"shop_item_id"}),
		EventConsumedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: EventConsumedTotal,
			Help: "Count of consumed events by topic",
		}, []string{"topic"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"path", "code"}),
	}
)

// RegisterMetrics registers every collector to the default registry.
func RegisterMetrics() {
	for _, c := range PromCounters {
		prometheus.MustRegister(c)
	}

	for _, h := range PromHistograms {
		prometheus.MustRegister(h)
	}
}
