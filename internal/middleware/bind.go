package middleware

import (
	"encoding/json"
	"net/http"

	"lifeline/pkg/validator"
)

// DecodeValid decodes the body into target and runs struct validation.
// Handlers use it directly rather than as a chi middleware so the decoded
// value stays local to the request.
func DecodeValid(r *http.Request, target interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return err
	}
	return validator.ValidateStruct(target)
}
