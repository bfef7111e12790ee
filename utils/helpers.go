package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/d3flow/mindflow/constants"
)

// ============================================================================
// STANDARDIZED JSON HELPERS
// ============================================================================

// JSONResult represents the result of a JSON operation
type JSONResult struct {
	Data []byte
	Err  error
}

// MarshalJSON marshals data to JSON with error handling
func MarshalJSON(v any) JSONResult {
	data, err := json.Marshal(v)
	return JSONResult{Data: data, Err: err}
}

// MarshalJSONIndent marshals data to pretty JSON with error handling
func MarshalJSONIndent(v any, indent string) JSONResult {
	if indent == "" {
		indent = constants.JSONIndent
	}
	data, err := json.MarshalIndent(v, "", indent)
	return JSONResult{Data: data, Err: err}
}

// ============================================================================
// STANDARDIZED HTTP HELPERS
// ============================================================================

// HTTPErrorResponse represents a standardized HTTP error response
type HTTPErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

// WriteHTTPError writes a standardized HTTP error response
func WriteHTTPError(w http.ResponseWriter, message string, code int) {
	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w.WriteHeader(code)

	response := HTTPErrorResponse{
		Error:   http.StatusText(code),
		Message: message,
		Code:    code,
	}

	if result := MarshalJSON(response); result.Err == nil {
		w.Write(result.Data)
	} else {
		// Fallback to plain text if JSON marshaling fails
		w.Header().Set(constants.HeaderContentType, constants.ContentTypeText)
		fmt.Fprintf(w, "Error: %s", message)
	}
}

// WriteHTTPJSON writes a JSON response with proper headers
func WriteHTTPJSON(w http.ResponseWriter, v any) error {
	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)

	result := MarshalJSON(v)
	if result.Err != nil {
		WriteHTTPError(w, "Failed to encode response", http.StatusInternalServerError)
		return result.Err
	}

	w.Write(result.Data)
	return nil
}

// ============================================================================
// STANDARDIZED VALIDATION HELPERS
// ============================================================================

// ValidateRequired checks if required fields are present
func ValidateRequired(fieldName string, value any) error {
	if value == nil {
		return Errorf("required field '%s' is missing", fieldName)
	}
	if s, ok := value.(string); ok && s == "" {
		return Errorf("required field '%s' cannot be empty", fieldName)
	}
	return nil
}

// ValidateOneOf checks if value is one of the allowed values
func ValidateOneOf(fieldName string, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return Errorf("field '%s' must be one of %v, got '%s'", fieldName, allowed, value)
}
