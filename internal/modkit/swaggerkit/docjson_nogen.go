//go:build !swag

package swaggerkit

import "net/http"

// skeletonDoc stands in when the binary was built without the swag tag; the
// UI still loads, just with nothing to show
const skeletonDoc = `{"openapi":"3.0.3","info":{"title":"easel API","version":"0.0.0"},"paths":{}}`

func docHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		hdr := w.Header()
		hdr.Set("Content-Type", "application/json; charset=utf-8")
		hdr.Set("Cache-Control", "no-store")
		_, _ = w.Write([]byte(skeletonDoc))
	}
}
