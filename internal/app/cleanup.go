package app

// cleanupStack releases resources opened during New when a later step fails.
type cleanupStack []func()

func (s *cleanupStack) push(fn func()) {
	*s = append(*s, fn)
}

// run calls the pushed funcs in reverse order and empties the stack.
func (s *cleanupStack) run() {
	for i := len(*s) - 1; i >= 0; i-- {
		(*s)[i]()
	}
	*s = nil
}
