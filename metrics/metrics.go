package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "merabestie"

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Orders persisted after a successful stock check.",
	})

	StockRejections = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_stock_rejections_total",
		Help:      "Orders rejected because an item was out of stock.",
	})

	EmailsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_sent_total",
		Help:      "Outbound emails by outcome.",
	}, []string{"result"})

	CouponsDeactivated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "coupons_deactivated_total",
		Help:      "Coupons switched off by the expiry sweep.",
	})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
