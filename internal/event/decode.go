package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload returns an event payload as T. Payloads published in process
// are already T or *T; payloads read back from JSON (stream clients, the
// dead-letter file) arrive as raw bytes or generic maps and are re-decoded.
func DecodePayload[T any](input interface{}) (T, error) {
	var result T
	switch v := input.(type) {
	case T:
		return v, nil
	case *T:
		if v == nil {
			return result, fmt.Errorf("%s: nil %T", ErrContextDecodePayload, v)
		}
		return *v, nil
	case json.RawMessage:
		return result, decodeInto(v, &result)
	case []byte:
		return result, decodeInto(v, &result)
	}

	data, err := json.Marshal(input)
	if err != nil {
		return result, fmt.Errorf("%s: %w", ErrContextDecodePayload, err)
	}
	return result, decodeInto(data, &result)
}

func decodeInto(data []byte, target interface{}) error {
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%s: %w", ErrContextDecodePayload, err)
	}
	return nil
}
