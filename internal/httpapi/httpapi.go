// Package httpapi wires the gin engine shared by both mock servers: request
// binding with FastAPI-compatible validation errors, router fallbacks and
// middleware.
package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// The clients these mocks stand in for were written against FastAPI, which
// reports request schema failures as 422 with a "detail" list.
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		panic("gin binding engine is not go-playground/validator")
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ErrorDetail is a single scoped validation failure.
type ErrorDetail struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationResponse is the body written for a rejected request.
type ValidationResponse struct {
	Detail []ErrorDetail `json:"detail"`
}

// Response is the body written by router fallbacks and health checks.
type Response struct {
	Detail string `json:"detail"`
}

// Bind decodes the JSON body into value and validates it against its binding
// tags. Top-level keys must match a json tag exactly; encoding/json would
// otherwise fill "model" from "MODEL". On failure it writes a 422 and aborts
// the chain; callers return immediately when Bind reports false.
func Bind(c *gin.Context, value any) bool {
	var fields map[string]json.RawMessage
	if err := c.ShouldBindBodyWith(&fields, binding.JSON); err != nil {
		return reject(c, err)
	}
	body, err := json.Marshal(exactFields(fields, value))
	if err != nil {
		return reject(c, err)
	}
	if err := binding.JSON.BindBody(body, value); err != nil {
		return reject(c, err)
	}
	return true
}

// Write renders v as JSON without HTML escaping, so echoed request values
// like "a<b" go back byte for byte. No trailing newline is written.
func Write(c *gin.Context, status int, v any) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, Response{Detail: err.Error()})
		return
	}
	c.Data(status, "application/json; charset=utf-8", bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}

func reject(c *gin.Context, err error) bool {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ValidationResponse{Detail: details(err)})
	return false
}

// exactFields keeps only the keys that name a field of value's struct
// type verbatim.
func exactFields(fields map[string]json.RawMessage, value any) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(fields))
	t := reflect.TypeOf(value)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return fields
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		if raw, ok := fields[name]; ok {
			out[name] = raw
		}
	}
	return out
}

func details(err error) []ErrorDetail {
	var (
		validationErrors validator.ValidationErrors
		typeErr          *json.UnmarshalTypeError
		syntaxErr        *json.SyntaxError
	)
	switch {
	case errors.As(err, &validationErrors):
		out := make([]ErrorDetail, 0, len(validationErrors))
		for _, fe := range validationErrors {
			d := ErrorDetail{
				Loc:  []string{"body", fe.Field()},
				Msg:  "field required",
				Type: "value_error.missing",
			}
			if fe.Tag() != "required" {
				d.Msg = "validation failed for tag " + fe.Tag()
				d.Type = "value_error." + fe.Tag()
			}
			out = append(out, d)
		}
		return out
	case errors.As(err, &typeErr):
		loc := []string{"body"}
		if typeErr.Field != "" {
			loc = append(loc, strings.Split(typeErr.Field, ".")...)
		}
		return []ErrorDetail{{
			Loc:  loc,
			Msg:  "expected " + typeErr.Type.String() + ", got " + typeErr.Value,
			Type: "type_error",
		}}
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return []ErrorDetail{{
			Loc:  []string{"body"},
			Msg:  "invalid JSON body: " + err.Error(),
			Type: "value_error.jsondecode",
		}}
	default:
		return []ErrorDetail{{
			Loc:  []string{"body"},
			Msg:  err.Error(),
			Type: "value_error",
		}}
	}
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, Response{Detail: "Not Found"})
}

func methodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, Response{Detail: "Method Not Allowed"})
}

func healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
