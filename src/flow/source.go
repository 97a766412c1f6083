package flow

import (
	"encoding/json"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"example.com/weather-stream/src/prom_metrics"
)

/*
 * Decoder_source feeds the event loop from a stream of whitespace
 * separated JSON documents (one event per line in practice). A
 * malformed document is logged and ends the stream.
 */
type Decoder_source struct {
	dec *json.Decoder
}

func New_decoder_source(r io.Reader) *Decoder_source {
	return &Decoder_source{
		dec: json.NewDecoder(r),
	}
}

func (source *Decoder_source) Next() (any, bool) {
	var raw any
	if err := source.dec.Decode(&raw); err != nil {
		if err != io.EOF {
			logrus.Errorf("decoder_source next: %+v", err)
		}
		return nil, false
	}
	return raw, true
}

/*
 * Extractor_source runs every record from the inner source through
 * the configured extractors. One record can fan out to several events;
 * they are replayed in extractor order before the next record is read.
 */
type Extractor_source struct {
	inner      Event_source
	extractors []*Extractor
	pending    []any
}

func New_extractor_source(inner Event_source, extractors []*Extractor) *Extractor_source {
	return &Extractor_source{
		inner:      inner,
		extractors: extractors,
	}
}

func (source *Extractor_source) Next() (any, bool) {
	for {
		if len(source.pending) > 0 {
			event := source.pending[0]
			source.pending = source.pending[1:]
			return event, true
		}

		raw, ok := source.inner.Next()
		if !ok {
			return nil, false
		}

		extract_start := time.Now()
		for _, extractor := range source.extractors {
			source.pending = append(source.pending, extractor.Extract(raw)...)
		}
		prom_metrics.Prom_metric.Observe_extract_time(time.Since(extract_start))
	}
}
