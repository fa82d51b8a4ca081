package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)

var (
	authOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_auth_operations_total",
		Help: "Total number of auth flow operations by outcome",
	}, []string{"operation", "result"})

	mailMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_mail_messages_total",
		Help: "Outgoing mail by pipeline stage and outcome",
	}, []string{"stage", "result"})

	bufferedMessages = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "blog_mail_buffer_size",
		Help: "Messages parked in the local buffer while the queue is unreachable",
	})
)

// RecordAuth counts one auth operation. result is ResultOK or a domain error code.
func RecordAuth(operation, result string) {
	authOperations.WithLabelValues(operation, result).Inc()
}

// RecordMail counts one message at a pipeline stage (queued, buffered, sent, dropped).
func RecordMail(stage, result string) {
	mailMessages.WithLabelValues(stage, result).Inc()
}

func SetBufferSize(size int) {
	bufferedMessages.Set(float64(size))
}

// Handler serves the default registry in the Prometheus text format.
func Handler() fasthttp.RequestHandler {
	return fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
}
