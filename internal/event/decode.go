package event

import "encoding/json"

// DecodePayload recovers a typed payload from an event. In-process
// publishes carry the struct itself, so the type assertion wins;
// payloads that went through JSON (dead-letter replays, map payloads)
// take the marshal round-trip.
func DecodePayload[T any](input interface{}) (T, error) {
	if v, ok := input.(T); ok {
		return v, nil
	}
	var result T
	data, err := json.Marshal(input)
	if err != nil {
		return result, err
	}
	return result, json.Unmarshal(data, &result)
}
