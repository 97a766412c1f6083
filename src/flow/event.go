package flow

import (
	"errors"
	"fmt"

	"example.com/weather-stream/src/store"
)

var (
	Err_missing_type         = errors.New("Event must have a type")
	Err_unknown_type         = errors.New("Please verify input")
	Err_missing_command      = errors.New("Control message must have a command")
	Err_unknown_command      = errors.New("Unknown command")
	Err_missing_station_name = errors.New("Sample must have a stationName")
	Err_timestamp_not_number = errors.New("Timestamp must be a number")
)

type Sample_event struct {
	Station_name string
	Temperature  float64
	Timestamp    int64
}

/*
 * The command value is deliberately not judged here: a control event
 * arriving while the store has no stations is dropped whole, bogus
 * command included, so validity is only decided after the gate.
 */
type Control_event struct {
	Command     string
	Has_command bool
}

/*
 * Parse_event turns one raw decoded record into a *Sample_event or a
 * *Control_event. All shape and field type problems surface here, not
 * as field access failures during dispatch.
 */
func Parse_event(raw any) (any, error) {
	event, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("Event must be an object, got %T", raw)
	}

	event_type, ok := event["type"]
	if !ok || event_type == nil {
		return nil, Err_missing_type
	}

	switch event_type {
	case "sample":
		return parse_sample(event)
	case "control":
		return parse_control(event), nil
	default:
		return nil, Err_unknown_type
	}
}

func parse_sample(event map[string]any) (*Sample_event, error) {
	station_name, ok := event["stationName"].(string)
	if !ok {
		return nil, Err_missing_station_name
	}

	temperature, ok := as_number(event["temperature"])
	if !ok {
		return nil, store.Err_temperature_not_number
	}

	t, ok := as_number(event["timestamp"])
	if !ok {
		return nil, Err_timestamp_not_number
	}

	return &Sample_event{
		Station_name: station_name,
		Temperature:  temperature,
		Timestamp:    int64(t),
	}, nil
}

func parse_control(event map[string]any) *Control_event {
	command, ok := event["command"]
	if !ok || command == nil {
		return &Control_event{}
	}

	name, ok := command.(string)
	if !ok {
		// present but not a string -- fails as unknown after the gate
		return &Control_event{Has_command: true}
	}

	return &Control_event{Command: name, Has_command: true}
}

// json.Unmarshal decodes numbers as float64, gojq normalizes integer
// outputs to int -- both feed this parse
func as_number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
