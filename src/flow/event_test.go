package flow

import (
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/weather-stream/src/store"
)

func Test_parse_event_sample(t *testing.T) {
	event, err := Parse_event(map[string]any{
		"type":        "sample",
		"stationName": "Station1",
		"temperature": 25.5,
		"timestamp":   float64(1000),
	})
	require.NoError(t, err)
	require.Equal(t, &Sample_event{Station_name: "Station1", Temperature: 25.5, Timestamp: 1000}, event)

	// gojq hands integers over as int, not float64
	event, err = Parse_event(map[string]any{
		"type":        "sample",
		"stationName": "Station1",
		"temperature": 26,
		"timestamp":   1001,
	})
	require.NoError(t, err)
	require.Equal(t, &Sample_event{Station_name: "Station1", Temperature: 26.0, Timestamp: 1001}, event)
}

func Test_parse_event_sample_invalid(t *testing.T) {
	tests := []struct {
		name  string
		event map[string]any
		want  error
	}{
		{
			name:  "missing stationName",
			event: map[string]any{"type": "sample", "temperature": 25.5, "timestamp": 1000.0},
			want:  Err_missing_station_name,
		},
		{
			name:  "stationName not a string",
			event: map[string]any{"type": "sample", "stationName": 7.0, "temperature": 25.5, "timestamp": 1000.0},
			want:  Err_missing_station_name,
		},
		{
			name:  "missing temperature",
			event: map[string]any{"type": "sample", "stationName": "A", "timestamp": 1000.0},
			want:  store.Err_temperature_not_number,
		},
		{
			name:  "temperature not a number",
			event: map[string]any{"type": "sample", "stationName": "A", "temperature": "25.5", "timestamp": 1000.0},
			want:  store.Err_temperature_not_number,
		},
		{
			name:  "missing timestamp",
			event: map[string]any{"type": "sample", "stationName": "A", "temperature": 25.5},
			want:  Err_timestamp_not_number,
		},
		{
			name:  "timestamp not a number",
			event: map[string]any{"type": "sample", "stationName": "A", "temperature": 25.5, "timestamp": "1000"},
			want:  Err_timestamp_not_number,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse_event(test.event)
			require.ErrorIs(t, err, test.want)
		})
	}
}

func Test_parse_event_type_discriminator(t *testing.T) {
	_, err := Parse_event(map[string]any{"stationName": "A"})
	require.ErrorIs(t, err, Err_missing_type)
	require.EqualError(t, err, "Event must have a type")

	_, err = Parse_event(map[string]any{"type": nil})
	require.ErrorIs(t, err, Err_missing_type)

	_, err = Parse_event(map[string]any{"type": "telemetry"})
	require.ErrorIs(t, err, Err_unknown_type)
	require.EqualError(t, err, "Please verify input")

	_, err = Parse_event(map[string]any{"type": 7.0})
	require.ErrorIs(t, err, Err_unknown_type)

	_, err = Parse_event("not an object")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Event must be an object")
}

func Test_parse_event_control(t *testing.T) {
	event, err := Parse_event(map[string]any{"type": "control", "command": "snapshot"})
	require.NoError(t, err)
	require.Equal(t, &Control_event{Command: "snapshot", Has_command: true}, event)

	// absent or null command parses fine -- the gate decides first
	event, err = Parse_event(map[string]any{"type": "control"})
	require.NoError(t, err)
	require.Equal(t, &Control_event{}, event)

	event, err = Parse_event(map[string]any{"type": "control", "command": nil})
	require.NoError(t, err)
	require.Equal(t, &Control_event{}, event)

	// non string command is present but can never be recognized
	event, err = Parse_event(map[string]any{"type": "control", "command": 5.0})
	require.NoError(t, err)
	require.Equal(t, &Control_event{Has_command: true}, event)
}
