//go:build !linux

package metrics

// PeakRSS returns 0 on platforms without a getrusage reading.
func PeakRSS() uint64 { return 0 }
