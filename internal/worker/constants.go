package worker

// DefaultPoolName is used when a pool is not named
const DefaultPoolName = "default"

// Log messages
const (
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgQueueFull         = "Worker queue full, job rejected"
	LogMsgQueuedJobsDropped = "Worker pool stopped with jobs still queued"
)
