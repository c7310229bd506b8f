// Package swaggerkit mounts the Swagger UI and its JSON spec
package swaggerkit

import (
	"net/http"

	phttp "easel/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// docsPrefix is where the UI lives; the JSON spec hangs off it
const docsPrefix = "/api/docs"

// Mount exposes the Swagger UI under /api/docs when on
func Mount(r phttp.Router, on bool) {
	if !on {
		return
	}
	specURL := docsPrefix + "/doc.json"

	// the UI handler only matches under the trailing slash
	r.Get(docsPrefix, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, docsPrefix+"/", http.StatusPermanentRedirect)
	})
	r.Get(specURL, docHandler())
	r.Handle(docsPrefix+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("easel"),
		httpSwagger.URL(specURL),
	))
}
