package flow

import (
	"fmt"
	"time"

	"example.com/weather-stream/src/prom_metrics"
	"example.com/weather-stream/src/store"
)

type Event_source interface {
	/*
	 * next raw event record; ok is false once the stream is exhausted
	 */
	Next() (any, bool)
}

/*
 * Event_loop pulls raw records from an Event_source and folds sample
 * events into its store. Honored control events become responses:
 *
 *	loop := flow.New_event_loop(events, memory_store.New_memory_store())
 *	for loop.Scan() {
 *		emit(loop.Response())
 *	}
 *	err := loop.Err()
 *
 * The first failing event stops the loop for good; responses emitted
 * before the failure stay valid. Walking away early is fine -- nothing
 * runs between Scan calls.
 */
type Event_loop struct {
	store  store.Store
	events Event_source
	resp   any
	err    error
	done   bool
}

func New_event_loop(events Event_source, st store.Store) *Event_loop {
	return &Event_loop{
		store:  st,
		events: events,
	}
}

// advances past sample and gated control events until a response is
// produced; false on exhaustion or on the first dispatch error
func (loop *Event_loop) Scan() bool {
	if loop.done {
		return false
	}

	for {
		raw, ok := loop.events.Next()
		if !ok {
			loop.done = true
			return false
		}

		dispatch_start := time.Now()
		resp, err := loop.dispatch(raw)
		prom_metrics.Prom_metric.Inc_processed_event()
		prom_metrics.Prom_metric.Observe_processing_time(time.Since(dispatch_start))

		if err != nil {
			loop.err = fmt.Errorf("Error processing event: %w", err)
			loop.done = true
			return false
		}
		if resp != nil {
			loop.resp = resp
			return true
		}
	}
}

// the response produced by the last successful Scan
func (loop *Event_loop) Response() any {
	return loop.resp
}

// nil unless a dispatch error ended the stream
func (loop *Event_loop) Err() error {
	return loop.err
}

func (loop *Event_loop) dispatch(raw any) (any, error) {
	event, err := Parse_event(raw)
	if err != nil {
		return nil, err
	}

	switch ev := event.(type) {
	case *Sample_event:
		if err := loop.store.Apply_sample(ev.Station_name, ev.Temperature, ev.Timestamp); err != nil {
			return nil, err
		}
		prom_metrics.Prom_metric.Inc_sample_applied()
		prom_metrics.Prom_metric.Set_station_count(loop.store.Station_count())
		return nil, nil

	case *Control_event:
		// control messages only act once sample data exists
		if loop.store.Station_count() == 0 {
			prom_metrics.Prom_metric.Inc_control_gated()
			return nil, nil
		}

		if !ev.Has_command {
			return nil, Err_missing_command
		}

		switch ev.Command {
		case "snapshot":
			prom_metrics.Prom_metric.Inc_response("snapshot")
			return loop.store.Snapshot(), nil
		case "reset":
			prom_metrics.Prom_metric.Inc_response("reset")
			resp := loop.store.Reset()
			prom_metrics.Prom_metric.Set_station_count(0)
			return resp, nil
		default:
			return nil, Err_unknown_command
		}
	}

	return nil, Err_unknown_type
}
