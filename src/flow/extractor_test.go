package flow

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_new_extractor_config(t *testing.T) {
	config := New_extractor_config([]byte("name: wunderground\nfilter: wunderground.jq\n"))
	require.NotNil(t, config)
	require.Equal(t, "wunderground", config.Name)
	require.Equal(t, "wunderground.jq", config.Filter)
	require.False(t, config.Disabled)

	require.Nil(t, New_extractor_config([]byte("filter: no-name.jq\n")))
	require.Nil(t, New_extractor_config([]byte("::: not yaml")))
}

func Test_new_extractor_bad_program(t *testing.T) {
	require.Nil(t, New_extractor("broken", "| |"))
}

func Test_extract_sample_and_control(t *testing.T) {
	extractor := New_extractor("wu", `
		if .cmd then control(.cmd)
		else sample(.station; .temp; .ts)
		end`)
	require.NotNil(t, extractor)

	events := extractor.Extract(map[string]any{"station": "A", "temp": 25.5, "ts": 1000})
	require.Equal(t, []any{map[string]any{
		"type":        "sample",
		"stationName": "A",
		"temperature": 25.5,
		"timestamp":   1000,
	}}, events)

	events = extractor.Extract(map[string]any{"cmd": "snapshot"})
	require.Equal(t, []any{map[string]any{
		"type":    "control",
		"command": "snapshot",
	}}, events)
}

func Test_extract_fan_out(t *testing.T) {
	// one upstream record carrying a batch of readings
	extractor := New_extractor("batch", `.readings[] | sample(.n; .t; .ts)`)
	require.NotNil(t, extractor)

	events := extractor.Extract(map[string]any{"readings": []any{
		map[string]any{"n": "A", "t": 1.0, "ts": 10},
		map[string]any{"n": "B", "t": 2.0, "ts": 11},
	}})
	require.Len(t, events, 2)
	require.Equal(t, "A", events[0].(map[string]any)["stationName"])
	require.Equal(t, "B", events[1].(map[string]any)["stationName"])
}

func Test_extract_error_drops_record(t *testing.T) {
	extractor := New_extractor("picky", `
		if .src == "wu" then sample(.station; .temp; .ts)
		else extract_error("picky")
		end`)
	require.NotNil(t, extractor)

	require.Empty(t, extractor.Extract(map[string]any{"src": "other"}))
	require.Len(t, extractor.Extract(map[string]any{"src": "wu", "station": "A", "temp": 1.0, "ts": 10}), 1)
}

func Test_extract_compiled_test(t *testing.T) {
	extractor := New_extractor("regex", `
		select(.station | compiled_test("^ST-[0-9]+$")) | sample(.station; .temp; .ts)`)
	require.NotNil(t, extractor)

	require.Len(t, extractor.Extract(map[string]any{"station": "ST-42", "temp": 1.0, "ts": 10}), 1)
	require.Empty(t, extractor.Extract(map[string]any{"station": "nope", "temp": 1.0, "ts": 10}))
}
