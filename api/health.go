package api

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

type healthHandler struct {
	responder   Responder
	serviceName string
}

func newHealthHandler(serviceName string) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()
	return healthHandler{
		responder:   NewResponder(logger),
		serviceName: serviceName,
	}
}

// check returns a static availability payload.
func (h healthHandler) check() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, map[string]string{
			"status":  "healthy",
			"service": h.serviceName,
		})
	}
}
