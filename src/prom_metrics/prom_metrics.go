package prom_metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sirupsen/logrus"
)

type Prom_metrics struct {
	extractor_count  prometheus.Counter
	processed_events prometheus.Counter
	samples_applied  prometheus.Counter
	controls_gated   prometheus.Counter
	station_count    prometheus.Gauge
	responses        *prometheus.CounterVec
	extractor_events *prometheus.CounterVec
	extractor_drops  *prometheus.CounterVec
	processing_time  prometheus.Summary
	extract_time     prometheus.Summary

	Number_of_extractors    func(n int)
	Inc_processed_event     func()
	Inc_sample_applied      func()
	Inc_control_gated       func()
	Set_station_count       func(n int)
	Inc_response            func(command string)
	Inc_extractor_event     func(extractor string)
	Inc_extractor_dropped   func(extractor string)
	Observe_processing_time func(t time.Duration)
	Observe_extract_time    func(t time.Duration)

	activate_observe_processing_time bool
}

func (prom_metric *Prom_metrics) registor(reg *prometheus.Registry) {
	reg.MustRegister(prom_metric.extractor_count)
	reg.MustRegister(prom_metric.processed_events)
	reg.MustRegister(prom_metric.samples_applied)
	reg.MustRegister(prom_metric.controls_gated)
	reg.MustRegister(prom_metric.station_count)
	reg.MustRegister(prom_metric.responses)
	reg.MustRegister(prom_metric.extractor_events)
	reg.MustRegister(prom_metric.extractor_drops)

	if prom_metric.activate_observe_processing_time {
		reg.MustRegister(prom_metric.processing_time)
		reg.MustRegister(prom_metric.extract_time)
	}
}

func create_prom_metric(activate_observe_processing_time bool) *Prom_metrics {
	prom_metric := &Prom_metrics{
		activate_observe_processing_time: activate_observe_processing_time,

		extractor_count: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "extractor_count",
				Help: "The total number of loaded extractors",
			},
		),
		processed_events: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "processed_events",
				Help: "The total number of processed input events",
			},
		),
		samples_applied: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "samples_applied",
				Help: "The total number of samples folded into the store",
			},
		),
		controls_gated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "controls_gated",
				Help: "The number of control events dropped while no station data existed",
			},
		),
		station_count: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "station_count",
				Help: "The number of stations currently aggregated",
			},
		),
		responses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "responses_emitted",
				Help: "The number of responses emitted per command",
			}, []string{"command"},
		),
		extractor_events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "extractor_events",
				Help: "The number of events generated per extractor",
			}, []string{"extractor"},
		),
		extractor_drops: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "extractor_dropped_msg",
				Help: "The number of not relevant records dropped per extractor",
			}, []string{"extractor"},
		),
		processing_time: prometheus.NewSummary(
			prometheus.SummaryOpts{
				Name:       "event_processing_time",
				Help:       "The time to dispatch one event (µs)",
				Objectives: map[float64]float64{0.50: 0.1, 0.80: 0.05, 0.90: 0.01, 0.95: 0.005, 0.99: 0.005},
			},
		),
		extract_time: prometheus.NewSummary(
			prometheus.SummaryOpts{
				Name:       "extract_time",
				Help:       "The time to apply all extractors to a record (µs)",
				Objectives: map[float64]float64{0.50: 0.1, 0.80: 0.05, 0.90: 0.01, 0.95: 0.005, 0.99: 0.005},
			},
		),
	}

	prom_metric.Number_of_extractors = func(n int) {
		prom_metric.extractor_count.Add(float64(n))
	}

	prom_metric.Inc_processed_event = func() {
		prom_metric.processed_events.Inc()
	}

	prom_metric.Inc_sample_applied = func() {
		prom_metric.samples_applied.Inc()
	}

	prom_metric.Inc_control_gated = func() {
		prom_metric.controls_gated.Inc()
	}

	prom_metric.Set_station_count = func(n int) {
		prom_metric.station_count.Set(float64(n))
	}

	prom_metric.Inc_response = func(command string) {
		prom_metric.responses.With(prometheus.Labels{"command": command}).Inc()
	}

	prom_metric.Inc_extractor_event = func(extractor string) {
		prom_metric.extractor_events.With(prometheus.Labels{"extractor": extractor}).Inc()
	}

	prom_metric.Inc_extractor_dropped = func(extractor string) {
		prom_metric.extractor_drops.With(prometheus.Labels{"extractor": extractor}).Inc()
	}

	if prom_metric.activate_observe_processing_time {
		prom_metric.Observe_processing_time = func(t time.Duration) {
			prom_metric.processing_time.Observe(float64(t / time.Microsecond))
		}
		prom_metric.Observe_extract_time = func(t time.Duration) {
			prom_metric.extract_time.Observe(float64(t / time.Microsecond))
		}
	} else {
		prom_metric.Observe_processing_time = func(t time.Duration) {}
		prom_metric.Observe_extract_time = func(t time.Duration) {}
	}

	return prom_metric
}

// never nil -- the unregistered default keeps flow code metric safe
// before Setup_prometheus runs (and in tests)
var Prom_metric *Prom_metrics = create_prom_metric(false)

func Setup_prometheus(prometheusport uint, activate_observe_processing_time bool) {
	reg := prometheus.NewRegistry()

	Prom_metric = create_prom_metric(activate_observe_processing_time)

	Prom_metric.registor(reg)

	if prometheusport == 0 {
		return
	}

	http.Handle("/metrics", promhttp.HandlerFor(
		reg,
		promhttp.HandlerOpts{
			Registry: reg,
		},
	))

	go func() {
		logrus.Infof("metrics exposed at: localhost:%d/metrics", prometheusport)
		if err := http.ListenAndServe(fmt.Sprintf(":%d", prometheusport), nil); err != nil {
			logrus.Errorf("setup prometheus: %+v", err)
		}
	}()
}
