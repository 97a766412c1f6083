package main

import (
	"github.com/jnovack/flag"
)

type opt struct {
	input  string
	output string

	extractorsdir string

	prometheusport                   uint
	activate_observe_processing_time bool

	pprofon       bool
	pprofdir      string
	pprofduration uint

	loglevel string
}

func from_args() opt {

	var opt opt

	flag.StringVar(&opt.input, "input", "-", "Input of line delimited JSON events (- for stdin)")
	flag.StringVar(&opt.output, "output", "-", "Output for line delimited JSON responses (- for stdout)")

	flag.StringVar(&opt.extractorsdir, "extractors_dir", "", "Directory of the jq extractor files (empty: consume events as-is)")

	flag.UintVar(&opt.prometheusport, "prometheus_port", 7700, "Prometheous port (0 to disable)")
	flag.BoolVar(&opt.activate_observe_processing_time, "activatete_timing_colection", false, "Is the collection by prometheus of processing time on (may hinder perforance!)")

	flag.BoolVar(&opt.pprofon, "pprof_on", false, "Profoling on?")
	flag.StringVar(&opt.pprofdir, "pprof_dir", "./pprof", "Directory for pprof file")
	flag.UintVar(&opt.pprofduration, "pprof_duration", 60*2, "Number of seconds to run pprof")

	flag.StringVar(&opt.loglevel, "log_level", "info", "Logging level: panic - fatal - error - warn - info - debug - trace")

	flag.Parse()

	return opt

}
