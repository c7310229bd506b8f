package httpkit

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type filterReq struct {
	URLs    []string `json:"urls" validate:"required,min=1"`
	Timeout int      `json:"timeout,omitempty"`
}

// run drives a Handler and hands back the recorded status and body
func run(t *testing.T, h Handler, method, body string) (int, string) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "/images/filter", rd)
	w := httptest.NewRecorder()
	h(w, req)
	return w.Code, w.Body.String()
}

// mustNotRun fails the test if the wrapped handler is ever invoked
func mustNotRun(t *testing.T, why string) func(*http.Request, filterReq) (any, error) {
	return func(*http.Request, filterReq) (any, error) {
		t.Helper()
		t.Fatalf("handler ran %s", why)
		return nil, nil
	}
}

func TestHandle_ForwardsTheResponse(t *testing.T) {
	h := Handle(func(*http.Request) Response {
		return Response{Status: http.StatusCreated, Body: "cache registered"}
	})
	status, body := run(t, h, http.MethodPost, "")
	if status != http.StatusCreated {
		t.Fatalf("status = %d, want 201", status)
	}
	if !strings.Contains(body, "cache registered") {
		t.Fatalf("body = %q", body)
	}
}

func TestCall_WrapsPlainValues(t *testing.T) {
	h := Call(func(*http.Request) (any, error) {
		return map[string]int{"inflight": 3}, nil
	})
	status, body := run(t, h, http.MethodGet, "")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if !strings.Contains(body, `"inflight":3`) {
		t.Fatalf("body = %q", body)
	}
}

func TestCall_PassesResponsesThrough(t *testing.T) {
	h := Call(func(*http.Request) (any, error) {
		return Response{Status: http.StatusNoContent}, nil
	})
	status, body := run(t, h, http.MethodDelete, "")
	if status != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", status)
	}
	if body != "" {
		t.Fatalf("expected no body, got %q", body)
	}
}

func TestCall_MapsErrors(t *testing.T) {
	h := Call(func(*http.Request) (any, error) {
		return nil, errors.New("tracker gone")
	})
	status, body := run(t, h, http.MethodGet, "")
	if status < 400 {
		t.Fatalf("status = %d, want an error status", status)
	}
	if body == "" {
		t.Fatal("expected an error body")
	}
}

func TestJSON_DecodesIntoHandler(t *testing.T) {
	h := JSON[filterReq](func(r *http.Request, in filterReq) (any, error) {
		if len(in.URLs) != 2 || in.Timeout != 30 {
			t.Fatalf("decoded %+v", in)
		}
		return map[string]any{"accepted": len(in.URLs)}, nil
	})

	status, body := run(t, h, http.MethodPost,
		`{"urls":["https://cdn.example/a.png","https://cdn.example/b.png"],"timeout":30}`)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if !strings.Contains(body, `"accepted":2`) {
		t.Fatalf("body = %q", body)
	}
}

func TestJSON_PassesResponsesThrough(t *testing.T) {
	h := JSON[filterReq](func(*http.Request, filterReq) (any, error) {
		return Response{Status: http.StatusCreated, Body: "queued"}, nil
	})
	status, body := run(t, h, http.MethodPost, `{"urls":["https://cdn.example/a.png"]}`)
	if status != http.StatusCreated {
		t.Fatalf("status = %d, want 201", status)
	}
	if !strings.Contains(body, "queued") {
		t.Fatalf("body = %q", body)
	}
}

func TestJSON_RejectsMalformedBodies(t *testing.T) {
	h := JSON[filterReq](mustNotRun(t, "on a decode error"))
	if status, _ := run(t, h, http.MethodPost, `{"urls":[`); status < 400 {
		t.Fatalf("malformed body status = %d, want an error", status)
	}
}

func TestJSON_RejectsUnknownFields(t *testing.T) {
	h := JSON[filterReq](mustNotRun(t, "on an unknown field"))
	if status, _ := run(t, h, http.MethodPost, `{"urls":[],"depth":2}`); status < 400 {
		t.Fatalf("unknown field status = %d, want an error", status)
	}
}

func TestJSON_EnforcesValidateTags(t *testing.T) {
	h := JSON[filterReq](mustNotRun(t, "on a validation failure"))
	status, body := run(t, h, http.MethodPost, `{"urls":[]}`)
	if status < 400 {
		t.Fatalf("empty urls status = %d, want an error", status)
	}
	if !strings.Contains(body, "urls") {
		t.Fatalf("body does not name the failing field: %q", body)
	}
}

func TestJSON_HandlerErrorsReachTheEnvelope(t *testing.T) {
	h := JSON[filterReq](func(*http.Request, filterReq) (any, error) {
		return nil, errors.New("checker closed")
	})
	status, body := run(t, h, http.MethodPost, `{"urls":["https://cdn.example/a.png"]}`)
	if status < 400 {
		t.Fatalf("status = %d, want an error status", status)
	}
	if !strings.Contains(body, "checker closed") {
		t.Fatalf("body = %q", body)
	}
}
