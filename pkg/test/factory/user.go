package factory

import (
	"maps"

	fab "github.com/Goldziher/fabricator"

	"accountsapi/internal/core/model/request"
)

// NewRegisterRequest builds a registration payload with random optional
// fields. Required fields default to fixed values unless overridden.
func NewRegisterRequest(customData ...map[string]any) request.RegisterRequest {
	instance := fab.New(request.RegisterRequest{})

	data := map[string]any{
		"Name":     "María",
		"Email":    "maria@example.com",
		"Password": "12345678",
	}

	for _, custom := range customData {
		maps.Copy(data, custom)
	}

	return instance.Build(data)
}
