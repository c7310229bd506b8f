// Package bind decodes and validates JSON request bodies for handlers
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "easel/internal/platform/errors"
	"easel/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FieldLevel aliases validator.FieldLevel so custom tags don't import validator directly
type FieldLevel = validator.FieldLevel

// ValidatorSvc bundles the process-wide validator with its translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	current = sync.OnceValue(assemble)

	// decMore is swappable in tests to fake a decoder state
	decMore = func(dec *json.Decoder) bool { return dec.More() }
)

// Get returns the validator singleton, assembling it on first use
func Get() *ValidatorSvc { return current() }

// RegisterValidation installs a custom tag on the shared validator
func RegisterValidation(tag string, fn validator.Func) error {
	return Get().Validator.RegisterValidation(tag, fn)
}

func assemble() *ValidatorSvc {
	locale := en.New()
	tr, _ := ut.New(locale, locale).GetTranslator("en")

	val := validator.New(validator.WithRequiredStructEnabled())
	val.RegisterTagNameFunc(jsonFieldName)
	_ = en_translations.RegisterDefaultTranslations(val, tr)

	// the stock min and max messages are wordy; keep ours short
	registerShort(val, tr, "min", "{0} must be at least {1}")
	registerShort(val, tr, "max", "{0} must be at most {1}")

	return &ValidatorSvc{Validator: val, Translator: tr}
}

// jsonFieldName makes failure messages name the json field, not the Go one
func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return fld.Name
	}
	return name
}

func registerShort(val *validator.Validate, tr ut.Translator, tag, template string) {
	_ = val.RegisterTranslation(tag, tr,
		func(t ut.Translator) error { return t.Add(tag, template, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field(), fe.Param())
			return s
		},
	)
}

// JSONOptions tunes body parsing. Callers wanting the defaults pass nothing;
// the zero value means unlimited size, strict keys off, empty bodies rejected
type JSONOptions struct {
	MaxBytes        int64 // cap on body size, 0 lifts the cap
	DisallowUnknown bool
	AllowEmptyBody  bool
}

// ParseJSON decodes the body into T, validates it, and maps every failure to
// a project error the envelope layer knows how to render
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var out, zero T

	jo := JSONOptions{MaxBytes: 1 << 20, DisallowUnknown: true}
	if len(opts) > 0 {
		jo = opts[0]
	}

	raw, err := slurp(r.Body, jo.MaxBytes)
	if err != nil {
		return zero, perr.JSONErrf("reading body: %v", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		if jo.AllowEmptyBody || bodyOptional(r.Method) {
			return zero, nil
		}
		return zero, perr.JSONErrf("request carries no body")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if jo.DisallowUnknown {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&out); err != nil {
		return zero, perr.JSONErrf("body is not valid JSON: %v", err)
	}
	if decMore(dec) {
		return zero, perr.JSONErrf("body continues past the first JSON value")
	}

	if err := Get().Validator.Struct(out); err != nil {
		var inv *validator.InvalidValidationError
		if errors.As(err, &inv) {
			logger.Get().Error().Err(inv).Msg("validator internal error")
			return zero, perr.JSONErrf("validation could not run")
		}
		field, msg := ValidationFieldAndMessage(err)
		return zero, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", msg), field)
	}
	return out, nil
}

// slurp drains and closes the body, capped at max bytes when max > 0.
// A body over the cap comes back truncated and fails JSON decoding later
func slurp(body io.ReadCloser, max int64) ([]byte, error) {
	defer func() {
		if err := body.Close(); err != nil {
			logger.Get().Error().Err(err).Msg("request body close failed")
		}
	}()
	var rd io.Reader = body
	if max > 0 {
		rd = io.LimitReader(body, max)
	}
	return io.ReadAll(rd)
}

// bodyOptional reports whether the verb conventionally ships without a body
func bodyOptional(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodDelete, http.MethodOptions:
		return true
	}
	return false
}

// ValidationFieldAndMessage reports the first failing field and its
// translated message
func ValidationFieldAndMessage(err error) (field, message string) {
	if err == nil {
		return field, message
	}
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		return errs[0].Field(), errs[0].Translate(Get().Translator)
	}
	return field, err.Error()
}
