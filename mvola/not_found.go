package mvola

import (
	"net/http"

	"encore.dev/rlog"
)

// NotFound answers every request that matches no other endpoint.
//
//encore:api public raw path=/!fallback
func (s *Service) NotFound(w http.ResponseWriter, req *http.Request) {
	rlog.Warn("endpoint not found", "method", req.Method, "path", req.URL.Path)
	writeJSON(w, http.StatusNotFound, &Response{Success: false, Message: "Endpoint non trouvé"})
}
