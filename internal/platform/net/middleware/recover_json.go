package middleware

import (
	nethttp "net/http"
	"runtime/debug"
	"strings"

	perr "easel/internal/platform/errors"
	"easel/internal/platform/logger"
	pnet "easel/internal/platform/net"
	phttp "easel/internal/platform/net/http"
)

// RecoverJSON turns a handler panic into the standard JSON 500 envelope and
// logs the stack under the request id, so one bad request never takes the
// process down
func RecoverJSON(next nethttp.Handler) nethttp.Handler {
	return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			rid := pnet.RequestID(r.Context())

			// indent the frames so the whole stack stays one log line
			stack := strings.ReplaceAll(string(debug.Stack()), "\n", "\n\t")

			logger.C(r.Context()).Error().
				Str("request_id", rid).
				Any("panic", v).
				Msgf("recovered from handler panic\n%s", stack)

			if rid != "" {
				w.Header().Set("X-Request-ID", rid)
			}

			status, wire := pnet.Error(perr.PanicErrf("panic recovered"), rid)
			phttp.JSON(w, status, wire)
		}()
		next.ServeHTTP(w, r)
	})
}
