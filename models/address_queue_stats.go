package models

// AddressQueueStats is a snapshot of the address resolution queue.
type AddressQueueStats struct {
	Limit    int `json:"limit"`
	Active   int `json:"active"`
	Pending  int `json:"pending"`
	InFlight int `json:"in_flight"`
	Peak     int `json:"peak"`
	Resolved int `json:"resolved"`
}
