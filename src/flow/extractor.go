package flow

import (
	"fmt"

	"github.com/itchyny/gojq"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"example.com/weather-stream/src/jq_extensions"
	"example.com/weather-stream/src/prom_metrics"
)

type Extractor_config struct {
	Name     string `json:"name" yaml:"name"`
	Filter   string `json:"filter" yaml:"filter"`
	Disabled bool   `json:"disabled" yaml:"disabled"`
}

/*
 * An Extractor maps one upstream record into zero or more event
 * records through a jq program. Programs are compiled with the event
 * constructors sample/3 and control/1, with extract_error/1 to flag a
 * record as not relevant, and with compiled_test/1 for cached regex
 * matching.
 */
type Extractor struct {
	Name string

	code *gojq.Code
}

func New_extractor_config(buf []byte) *Extractor_config {
	var config Extractor_config

	if err := yaml.Unmarshal(buf, &config); err != nil {
		logrus.Errorf("New_extractor_config: %+v", err)
		return nil
	}

	if !config.valid() {
		logrus.Errorf("New_extractor_config: not a valid config")
		return nil
	}

	return &config
}

func (config *Extractor_config) valid() bool {
	return len(config.Name) > 0 && len(config.Filter) > 0
}

func New_extractor(name string, program string) *Extractor {
	parsed, err := gojq.Parse(program)
	if err != nil {
		logrus.Errorf("New_extractor parse %s: %+v", name, err)
		return nil
	}

	code, err := gojq.Compile(parsed,
		with_function_sample(),
		with_function_control(),
		with_function_extract_error(),
		with_function_compiled_test(),
	)
	if err != nil {
		logrus.Errorf("New_extractor compile %s: %+v", name, err)
		return nil
	}

	return &Extractor{
		Name: name,
		code: code,
	}
}

func (extractor *Extractor) Extract(raw any) []any {
	events := make([]any, 0, 1)

	iter := extractor.code.Run(raw)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			// extract_error -- record is not relevant for this extractor
			logrus.Tracef("extractor %s next err: %+v", extractor.Name, err)
			prom_metrics.Prom_metric.Inc_extractor_dropped(extractor.Name)
			continue
		}
		prom_metrics.Prom_metric.Inc_extractor_event(extractor.Name)
		events = append(events, v)
	}

	return events
}

/*
 * jq compiler options
 */

// def sample($station; $temperature; $timestamp): {"type": "sample", ...};
func with_function_sample() gojq.CompilerOption {
	return gojq.WithFunction("sample", 3, 3, func(in any, args []any) any {
		return map[string]any{
			"type":        "sample",
			"stationName": args[0],
			"temperature": args[1],
			"timestamp":   args[2],
		}
	})
}

// def control($command): {"type": "control", "command": $command};
func with_function_control() gojq.CompilerOption {
	return gojq.WithFunction("control", 1, 1, func(in any, args []any) any {
		return map[string]any{
			"type":    "control",
			"command": args[0],
		}
	})
}

func with_function_extract_error() gojq.CompilerOption {
	return gojq.WithFunction("extract_error", 1, 1, func(in any, args []any) any {
		return fmt.Errorf("extract_error: not a relevant msg for extractor: %s", args[0])
	})
}

func with_function_compiled_test() gojq.CompilerOption {
	return gojq.WithFunction("compiled_test", 1, 1, jq_extensions.Compiled_test)
}
