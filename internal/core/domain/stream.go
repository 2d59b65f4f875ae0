package domain

// StreamState is the terminal state of a single transfer.
type StreamState string

const (
	// StreamCompleted means the full negotiated window was written.
	StreamCompleted StreamState = "completed"
	// StreamAborted means the client went away before the window was
	// delivered. Not an error: players abandon ranges on every seek.
	StreamAborted StreamState = "aborted"
	// StreamFailed means a blob read or sink write failed mid-transfer.
	StreamFailed StreamState = "failed"
)
