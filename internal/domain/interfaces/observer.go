package interfaces

// Observer receives the pipeline's named notifications. An observer handle is
// passed explicitly through the pipeline; there is no global event bus.
type Observer interface {
	// Progress reports bytes downloaded out of a total for a labeled transfer.
	Progress(downloaded, total int64, label string)

	// Extract reports a file materialized out of the installer archive.
	Extract(message string)

	// Check reports evaluation of one item out of a labeled collection.
	Check(index, total int, label string)

	// Patch relays a patch-engine progress message.
	Patch(message string)

	// Error relays a non-fatal error message from an external collaborator.
	Error(message string)
}

// ProgressFunc is the shape of download progress callbacks.
type ProgressFunc func(downloaded, total int64)

// NoOpObserver discards all notifications (useful for tests)
type NoOpObserver struct{}

// Progress does nothing (no-op implementation)
func (n *NoOpObserver) Progress(_, _ int64, _ string) {}

// Extract does nothing (no-op implementation)
func (n *NoOpObserver) Extract(_ string) {}

// Check does nothing (no-op implementation)
func (n *NoOpObserver) Check(_, _ int, _ string) {}

// Patch does nothing (no-op implementation)
func (n *NoOpObserver) Patch(_ string) {}

// Error does nothing (no-op implementation)
func (n *NoOpObserver) Error(_ string) {}
