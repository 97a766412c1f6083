package main

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"example.com/weather-stream/src/flow"
	"example.com/weather-stream/src/prom_metrics"
	"example.com/weather-stream/src/store/memory_store"
)

func logging(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	l, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Errorf("Failed parse log level. Reason: %+v", err)
	} else {
		logrus.SetLevel(l)
	}
}

func open_input(path string) io.ReadCloser {
	if path == "-" {
		return os.Stdin
	}
	f, err := os.Open(path)
	if err != nil {
		logrus.Fatalln("Failed open input. Reason: ", err)
	}
	return f
}

func open_output(path string) io.WriteCloser {
	if path == "-" {
		return os.Stdout
	}
	f, err := os.Create(path)
	if err != nil {
		logrus.Fatalln("Failed open output. Reason: ", err)
	}
	return f
}

func main() {
	opt := from_args()
	logging(opt.loglevel)
	logrus.Infof("%+v", opt)

	prom_metrics.Setup_prometheus(opt.prometheusport, opt.activate_observe_processing_time)

	input := open_input(opt.input)
	output := open_output(opt.output)

	defer input.Close()
	defer output.Close()

	var events flow.Event_source = flow.New_decoder_source(input)

	if len(opt.extractorsdir) > 0 {
		extractors := load_extractors(opt.extractorsdir)
		prom_metrics.Prom_metric.Number_of_extractors(len(extractors))
		events = flow.New_extractor_source(events, extractors)
	}

	if opt.pprofon {
		go activate_profiling(opt.pprofdir, time.Duration(opt.pprofduration)*time.Second)
	}

	// Logic
	loop := flow.New_event_loop(events, memory_store.New_memory_store())

	if err := run(loop, output); err != nil {
		logrus.Fatalf("%+v", err)
	}
}

/*
 * run drives the loop to exhaustion, writing one JSON document per
 * response. The loop error is the stream verdict: nil on a clean end,
 * the wrapped dispatch error when an event killed the run.
 */
func run(loop *flow.Event_loop, out io.Writer) error {
	encoder := json.NewEncoder(out)

	for loop.Scan() {
		if err := encoder.Encode(loop.Response()); err != nil {
			return err
		}
	}

	return loop.Err()
}
