package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"mockapi/internal/mockgen"
)

// SaveConfigRequest is the payload for POST /{endpoint}/config.
type SaveConfigRequest struct {
	Fields json.RawMessage `json:"fields"`
}

// DecodeFields returns the field list, rejecting a missing or non-array
// "fields" member.
func (req SaveConfigRequest) DecodeFields() ([]mockgen.Field, error) {
	raw := bytes.TrimSpace(req.Fields)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, fmt.Errorf("%w: fields must be an array", ErrInvalidInput)
	}
	var fields []mockgen.Field
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: fields must be an array of {name, type} objects: %v", ErrInvalidInput, err)
	}
	return fields, nil
}

// SuccessResponse acknowledges a write.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ConfigResponse describes a stored endpoint schema.
type ConfigResponse struct {
	Endpoint string          `json:"endpoint"`
	Fields   []mockgen.Field `json:"fields"`
}

// EndpointsResponse lists the caller's endpoints.
type EndpointsResponse struct {
	Endpoints []string `json:"endpoints"`
}

// HealthResponse is the liveness probe body.
type HealthResponse struct {
	Status string `json:"status"`
}
