package memory_store

import (
	"math"

	store_interface "example.com/weather-stream/src/store"
)

type Station_aggregate struct {
	high           float64
	low            float64
	last_timestamp int64
}

/*
 * Memory_store is owned by a single event loop -- not safe for
 * concurrent use. One instance per stream processing run.
 */
type Memory_store struct {
	stations       map[string]*Station_aggregate
	last_timestamp int64
}

func New_memory_store() store_interface.Store {
	return &Memory_store{
		stations: make(map[string]*Station_aggregate),
	}
}

func (store *Memory_store) Apply_sample(station_name string, temperature float64, t int64) error {
	if len(station_name) == 0 {
		return store_interface.Err_station_name_empty
	}
	if math.IsNaN(temperature) {
		return store_interface.Err_temperature_not_number
	}

	if t > store.last_timestamp {
		store.last_timestamp = t
	}

	station, ok := store.stations[station_name]
	if !ok {
		store.stations[station_name] = &Station_aggregate{
			high:           temperature,
			low:            temperature,
			last_timestamp: t,
		}
		return nil
	}

	station.high = math.Max(station.high, temperature)
	station.low = math.Min(station.low, temperature)
	station.last_timestamp = t
	return nil
}

// returns a copy -- callers can hold on to it across later mutations
func (store *Memory_store) Snapshot() *store_interface.Snapshot_response {
	stations := make(map[string]store_interface.Station_temps, len(store.stations))
	for name, station := range store.stations {
		stations[name] = store_interface.Station_temps{
			High: station.high,
			Low:  station.low,
		}
	}
	return &store_interface.Snapshot_response{
		Type:     "snapshot",
		As_of:    store.last_timestamp,
		Stations: stations,
	}
}

func (store *Memory_store) Reset() *store_interface.Reset_response {
	reset_timestamp := store.last_timestamp

	store.stations = make(map[string]*Station_aggregate)
	store.last_timestamp = 0

	return &store_interface.Reset_response{
		Type:  "reset",
		As_of: reset_timestamp,
	}
}

func (store *Memory_store) Station_count() int {
	return len(store.stations)
}
