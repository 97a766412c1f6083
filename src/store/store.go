package store

import "errors"

var (
	Err_station_name_empty     = errors.New("Station name cannot be empty")
	Err_temperature_not_number = errors.New("Temperature must be a number")
)

type Station_temps struct {
	High float64 `json:"high"`
	Low  float64 `json:"low"`
}

type Snapshot_response struct {
	Type     string                   `json:"type"`
	As_of    int64                    `json:"asOf"`
	Stations map[string]Station_temps `json:"stations"`
}

type Reset_response struct {
	Type  string `json:"type"`
	As_of int64  `json:"asOf"`
}

type Store interface {
	/*
	 *	station_name - name of the reporting station (non empty)
	 *	temperature - observed temperature (a real number, NaN is rejected)
	 *	t - unix timestamp of the observation
	 */
	Apply_sample(station_name string, temperature float64, t int64) error

	/*
	 * read only view of the aggregate; asOf is the max timestamp seen
	 * since the last reset
	 */
	Snapshot() *Snapshot_response

	/*
	 * clears all stations and zeroes the store time; asOf reports the
	 * pre clear timestamp
	 */
	Reset() *Reset_response

	Station_count() int
}
