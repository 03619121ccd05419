// Package foundation provides generic utilities shared by the export stages.
package foundation

// Change is the explicit outcome of a stage: the artifact it produced and
// whether persisted state was actually modified while producing it.
type Change[T any] struct {
	Changed  bool
	Artifact T
}

// Modified creates a Change for a stage that wrote something.
func Modified[T any](artifact T) Change[T] {
	return Change[T]{Changed: true, Artifact: artifact}
}

// Unmodified creates a Change for a stage that left persisted state as it was.
func Unmodified[T any](artifact T) Change[T] {
	return Change[T]{Artifact: artifact}
}

// ChangedIf creates a Change whose Changed flag is the given condition.
func ChangedIf[T any](changed bool, artifact T) Change[T] {
	return Change[T]{Changed: changed, Artifact: artifact}
}

// Erase drops the artifact type so heterogeneous stage outcomes can be recorded together.
func (c Change[T]) Erase() Change[any] {
	return Change[any]{Changed: c.Changed, Artifact: c.Artifact}
}
