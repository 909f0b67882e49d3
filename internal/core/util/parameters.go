package util

import (
	"bytes"
	"encoding/json"

	"github.com/gin-gonic/gin"
)

// BindJSON decodes a JSON object body into a fresh T whose fields are
// strings. Scalars of any type are accepted: numbers and true keep their
// literal text, while null, false and zero decode to "" so they read as
// absent. Objects and arrays are rejected.
func BindJSON[T any](c *gin.Context) (T, error) {
	var params T

	var raw map[string]json.RawMessage

	if err := c.ShouldBindJSON(&raw); err != nil {
		return params, err
	}

	for key, value := range raw {
		raw[key] = scalarToString(value)
	}

	normalized, err := json.Marshal(raw)

	if err != nil {
		return params, err
	}

	if err := json.Unmarshal(normalized, &params); err != nil {
		return params, err
	}

	return params, nil
}

func scalarToString(value json.RawMessage) json.RawMessage {
	decoder := json.NewDecoder(bytes.NewReader(value))
	decoder.UseNumber()

	var decoded any

	if err := decoder.Decode(&decoded); err != nil {
		return value
	}

	var text string

	switch v := decoded.(type) {
	case nil:
	case bool:
		if v {
			text = "true"
		}
	case json.Number:
		if f, err := v.Float64(); err != nil || f != 0 {
			text = v.String()
		}
	default:
		return value
	}

	encoded, err := json.Marshal(text)

	if err != nil {
		return value
	}

	return encoded
}
