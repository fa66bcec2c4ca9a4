package response

import (
	"encoding/json"
	"net/http"

	"github.com/gatehouse-go/gatehouse/policy"
)

// JSONResponse writes the given data as a JSON response with the specified status code.
func JSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// JSONErrorResponse writes an error message as a JSON response with the specified status code.
func JSONErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	JSONResponse(w, statusCode, map[string]string{"error": message})
}

// JSONDenialResponse writes a denied decision as a JSON response, including the
// denial reason when the decision carries one.
func JSONDenialResponse(w http.ResponseWriter, statusCode int, message string, decision policy.Decision) {
	body := map[string]string{"error": message}
	if reason := decision.Reason(); reason != "" {
		body["reason"] = string(reason)
	}

	JSONResponse(w, statusCode, body)
}
