package movementsensor

import "sync"

// LastError is an object that stores recent errors. If there have been sufficiently many recent
// errors, you can retrieve the most recent one.
type LastError struct {
	size      int
	threshold int

	mu    sync.Mutex
	errs  []error // oldest to newest
	count int     // non-nil entries in errs
}

// NewLastError creates a LastError object which will let you retrieve the most recent error if at
// least `threshold` of the most recent `size` items put into it are non-nil.
func NewLastError(size, threshold int) *LastError {
	return &LastError{size: size, errs: make([]error, size), threshold: threshold}
}

// Set stores an error, or a success when err is nil.
func (le *LastError) Set(err error) {
	le.mu.Lock()
	defer le.mu.Unlock()

	if le.size == 0 {
		return
	}
	if le.errs[0] != nil {
		le.count--
	}
	if err != nil {
		le.count++
	}
	le.errs = append(le.errs[1:], err)
}

// Get returns the most-recently-stored non-nil error if we've had enough recent errors. Returning
// an error wipes the window so the same error is not reported twice.
func (le *LastError) Get() error {
	le.mu.Lock()
	defer le.mu.Unlock()

	if le.count < le.threshold || le.count == 0 {
		return nil
	}

	var errToReturn error
	for i := len(le.errs) - 1; i >= 0; i-- {
		if le.errs[i] != nil {
			errToReturn = le.errs[i]
			break
		}
	}

	le.errs = make([]error, le.size)
	le.count = 0
	return errToReturn
}
