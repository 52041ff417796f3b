/*
Package req provides helper functions for HTTP request parsing and data binding.

It encapsulates the logic for parsing JSON request bodies and integrates error
handling to ensure data format correctness, facilitating subsequent business
logic processing.
*/
package req

import (
	"encoding/json"
	"net/http"
	"strings"

	"msgboard/internal/pkg/errs"
)

// BindJSON attempts to bind the JSON data from the HTTP request body to the destination struct dst.
func BindJSON(r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}
