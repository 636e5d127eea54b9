package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "graphboard-backend/pkg/errors"
	"graphboard-backend/pkg/utils"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads an optional JSON body into dst and validates it. An
// empty body leaves dst untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return apperrors.NewValidationError("Invalid request body: " + err.Error()).WithCause(err)
	}

	if err := utils.ValidateStruct(dst); err != nil {
		return apperrors.NewValidationError("Validation error: " + err.Error())
	}
	return nil
}
