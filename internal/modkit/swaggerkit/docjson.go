//go:build swag

package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"

	"easel/internal/platform/config"

	docs "easel/internal/services/api/docs"
)

// specDoc is the parsed swagger document. The methods below massage it into
// the exact shape the UI bundle is fed
type specDoc map[string]any

// docHandler parses the generated doc, applies the fixups and serves it
func docHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doc specDoc
		if err := json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc); err != nil {
			http.Error(w, "swagger doc is not valid JSON", http.StatusInternalServerError)
			return
		}

		doc.pinVersion()
		doc.setServers("/api/v1")
		doc.retitle(config.New().Prefix("CORE_API_").MayString("DOCS_TITLE_SUFFIX", ""))
		doc.declareErrorEnvelope()

		// the panic recoverer and the body binder fail the same way for every
		// handler, so their responses are stamped here rather than repeated in
		// each swagger comment
		doc.stampResponse("500", errorResponse(
			"Internal Server Error", 500, 1, "panic recovered",
		))
		doc.stampResponse("400", errorResponse(
			"Bad Request", 400, 5, "eviction must be one of [lru fifo]",
		))

		hdr := w.Header()
		hdr.Set("Content-Type", "application/json; charset=utf-8")
		hdr.Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(doc)
	}
}

// pinVersion forces openapi 3.0.3. Depending on its vintage swag emits
// swagger 2 or openapi 3.1 and the UI bundle renders neither correctly
func (d specDoc) pinVersion() {
	if _, wasV2 := d["swagger"]; wasV2 {
		delete(d, "swagger")
		d["openapi"] = "3.0.3"
		return
	}
	if v, _ := d["openapi"].(string); v == "" || strings.HasPrefix(v, "3.1") {
		d["openapi"] = "3.0.3"
	}
}

// setServers points the UI at the mounted base path unless the generated doc
// already names its servers
func (d specDoc) setServers(base string) {
	if _, ok := d["servers"]; !ok {
		d["servers"] = []any{map[string]any{"url": base}}
	}
}

// retitle appends suffix to info.title, which keeps staging docs tellable
// from prod when both are open in tabs
func (d specDoc) retitle(suffix string) {
	if suffix == "" {
		return
	}
	info, ok := d["info"].(map[string]any)
	if !ok {
		return
	}
	title, ok := info["title"].(string)
	if !ok {
		return
	}
	info["title"] = title + " " + suffix
}

// declareErrorEnvelope registers the shared error schema unless a generated
// model already claimed the name. Fields mirror the runtime envelope
func (d specDoc) declareErrorEnvelope() {
	schemas := subMap(subMap(d, "components"), "schemas")
	if _, ok := schemas["ErrorEnvelope"]; ok {
		return
	}
	schemas["ErrorEnvelope"] = map[string]any{
		"type":        "object",
		"description": "Envelope shared by every failing endpoint",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "integer", "format": "int32"},
			"error":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
		},
		"required": []any{"status_code", "status"},
	}
}

// stampResponse adds resp under code on every operation that does not
// document that status itself
func (d specDoc) stampResponse(code string, resp map[string]any) {
	paths, ok := d["paths"].(map[string]any)
	if !ok {
		return
	}
	for _, entry := range paths {
		ops, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		for _, o := range ops {
			op, ok := o.(map[string]any)
			if !ok {
				continue
			}
			rs := subMap(op, "responses")
			if _, claimed := rs[code]; !claimed {
				rs[code] = resp
			}
		}
	}
}

// errorResponse builds an OAS3 response body referencing the shared schema
func errorResponse(desc string, statusCode, code int, example string) map[string]any {
	return map[string]any{
		"description": desc,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorEnvelope"},
				"example": map[string]any{
					"status_code": statusCode,
					"status":      desc,
					"code":        code,
					"error":       example,
					"request_id":  "9f1c2d3e7a40/abc-000001",
				},
			},
		},
	}
}

// subMap returns m[key] as a map, installing a fresh one when absent or
// mistyped
func subMap(m map[string]any, key string) map[string]any {
	if v, ok := m[key].(map[string]any); ok {
		return v
	}
	v := map[string]any{}
	m[key] = v
	return v
}
