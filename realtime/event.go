package realtime

// task is a submitted effect with its submission sequence number.
type task struct {
	seq uint64
	fn  func()
}
