package monitoring

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

type ServerMiddleware struct {
	handler http.Handler
}

func (m *ServerMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Label by route template rather than raw path to keep cardinality down.
	path := r.URL.Path
	if route := mux.CurrentRoute(r); route != nil {
		if template, err := route.GetPathTemplate(); err == nil {
			path = template
		}
	}

	HttpRequestsTotal.WithLabelValues(path).Inc()

	timer := prometheus.NewTimer(HttpRequestDuration.WithLabelValues(path))

	m.handler.ServeHTTP(w, r)

	timer.ObserveDuration()
}

func NewServerMiddleware(handlerToWrap http.Handler) *ServerMiddleware {
	return &ServerMiddleware{handlerToWrap}
}
