package net

import (
	"net/http"

	perr "easel/internal/platform/errors"
)

// Wire is the envelope every transport answer travels in
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// envelope stamps the status fields every answer shares
func envelope(status int, rid string) Wire {
	return Wire{StatusCode: status, Status: http.StatusText(status), RequestID: rid}
}

// Reply builds a success envelope carrying data under the given status
func Reply(status int, data any, rid string) (int, Wire) {
	w := envelope(status, rid)
	w.Data = data
	return status, w
}

// Error maps err onto its HTTP status and wire form. A nil err degrades to
// an empty 200
func Error(err error, rid string) (int, Wire) {
	if err == nil {
		return Reply(http.StatusOK, nil, rid)
	}
	status, wf := perr.HTTP(err)
	w := envelope(status, rid)
	w.Code = wf.Code
	w.Error = wf.Message
	return status, w
}
