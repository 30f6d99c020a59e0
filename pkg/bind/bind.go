// Package bind decodes and validates an HTTP request body into a struct.
//
// Decoding is field by field: the body is read as a JSON object, and each
// key that matches a json-tagged field of dest is unmarshalled into that
// field on its own. Keys absent from the body leave dest untouched, so a
// caller can pre-populate dest from the stored row and bind a PATCH body
// over it. Keys with no matching field (read-only or unknown attributes)
// are ignored.
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/validate"
)

// ErrNotObject is returned when the body is valid JSON but not an object.
var ErrNotObject = errors.New("request body must be a JSON object")

func maxBodyBytes() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_BODY_BYTES", "4194304"), 10, 64)
	if err != nil || n <= 0 {
		return 4 << 20
	}
	return n
}

// JSON decodes r.Body into dest and validates it.
// Returns (nil, err) when the body is malformed or too large, and
// (errs, nil) when a field is mistyped or breaks a rule.
func JSON(r *http.Request, dest interface{}) (validate.Errors, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes())

	data, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		return nil, fmt.Errorf("read body: %w", err)
	}
	return Bytes(data, dest)
}

// Bytes is JSON for an already-read body.
func Bytes(data []byte, dest interface{}) (validate.Errors, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		data = []byte("{}")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, ErrNotObject
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	errs := Fields(raw, dest)
	for field, msgs := range validate.Struct(dest) {
		if !errs.Has(field) {
			errs[field] = msgs
		}
	}
	if validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}

// Fields unmarshals each entry of raw into the matching field of dest and
// reports a type message for every entry that does not fit.
func Fields(raw map[string]json.RawMessage, dest interface{}) validate.Errors {
	errs := validate.Errors{}

	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return errs
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() || field.Tag.Get("json") == "-" {
			continue
		}
		name := validate.JSONName(field)
		msg, ok := raw[name]
		if !ok {
			continue
		}

		target := rv.Field(i)
		if string(bytes.TrimSpace(msg)) == "null" {
			target.Set(reflect.Zero(field.Type))
			continue
		}

		fresh := reflect.New(field.Type)
		if err := json.Unmarshal(msg, fresh.Interface()); err != nil {
			errs.Add(name, typeMessage(field.Type))
			continue
		}
		target.Set(fresh.Elem())
	}

	return errs
}

// Messager lets a custom field type choose its own decode failure text.
type Messager interface {
	InvalidMessage() string
}

func typeMessage(t reflect.Type) string {
	base := t
	for base.Kind() == reflect.Ptr {
		base = base.Elem()
	}
	if m, ok := reflect.New(base).Interface().(Messager); ok {
		return m.InvalidMessage()
	}

	switch base.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "A valid integer is required."
	case reflect.Float32, reflect.Float64:
		return "A valid number is required."
	case reflect.String:
		return "Not a valid string."
	case reflect.Bool:
		return "Must be a valid boolean."
	case reflect.Slice, reflect.Array:
		return "Expected a list of items."
	}
	if base.String() == "decimal.Decimal" {
		return "A valid number is required."
	}
	return "Invalid value."
}
