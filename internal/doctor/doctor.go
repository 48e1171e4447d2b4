// Package doctor runs environment health checks: is git usable, is the remote
// reachable, can we write where the installation goes, is there room for it.
// Checks report rather than fix; the install command decides what is fatal.
package doctor

// Status is the severity of a single check result.
type Status string

const (
	StatusOK   Status = "OK"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

// Result is the outcome of one health check.
type Result struct {
	Status         Status
	CheckName      string
	Message        string
	Recommendation string
}

// HasFailure reports whether any result is a hard failure.
func HasFailure(results []Result) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}
