// Package dto decodes request bodies, query strings and path parameters into
// service commands.
package dto

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/corray333/backend-labs/grocery/internal/service/errs"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/pkg/errors"
)

var (
	validate = newValidator()
	decoder  = newSchemaDecoder()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

func newSchemaDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)

	return d
}

// Validate runs struct tag validation and reports the first failing field.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.Wrap(err, "validate request")
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return errs.Invalid(fe.Field(), fmt.Sprintf("%s is required", fe.Field()))
	case "gt":
		return errs.Invalid(fe.Field(), fmt.Sprintf("%s must be a positive integer", fe.Field()))
	case "gte":
		return errs.Invalid(fe.Field(), fmt.Sprintf("%s must be a non-negative integer", fe.Field()))
	default:
		return errs.Invalid(fe.Field(), fmt.Sprintf("%s is invalid", fe.Field()))
	}
}

// DecodeJSON decodes a request body into v.
func DecodeJSON(body io.Reader, v any) error {
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return errs.Invalid(typeErr.Field, fmt.Sprintf("%s has an invalid type", typeErr.Field))
		}
		return errs.Invalid("body", "Invalid request body")
	}

	return nil
}

// DecodeQuery decodes URL query parameters into v using `schema` tags.
func DecodeQuery(r *http.Request, v any) error {
	if err := decoder.Decode(v, r.URL.Query()); err != nil {
		var multi schema.MultiError
		if errors.As(err, &multi) && len(multi) > 0 {
			field := slices.Sorted(maps.Keys(multi))[0]
			return errs.Invalid(field, fmt.Sprintf("%s must be an integer", field))
		}
		return errs.Invalid("query", "Invalid query parameters")
	}

	return nil
}

// PathID parses a positive integer path parameter.
func PathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.Invalid(name, fmt.Sprintf("%s must be a positive integer", name))
	}

	return id, nil
}
