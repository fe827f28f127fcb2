package mines

// AssertionError marks a broken internal invariant, a programming error
// rather than a recoverable runtime condition.
type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}
