package ports

// Optional observer for engine activity.
type MetricsRecorder interface {
	RecordRun(mode string, reused bool)
	RecordCandidate(outcome string)
}
