package errors

// List accumulates independent failures across one pipeline stage.
// Stages append every error they encounter and check the list once at
// the end, so one failing item never hides its siblings.
type List struct {
	errs []error
}

// Append adds err to the list. A nil err is ignored.
func (l *List) Append(err error) {
	if err != nil {
		l.errs = append(l.errs, err)
	}
}

// Merge appends every error from errs.
func (l *List) Merge(errs []error) {
	for _, err := range errs {
		l.Append(err)
	}
}

// Len returns the number of accumulated errors.
func (l *List) Len() int {
	return len(l.errs)
}

// Errors returns the accumulated errors, or nil if there are none.
func (l *List) Errors() []error {
	if len(l.errs) == 0 {
		return nil
	}
	return l.errs
}

// Single builds a one-element error list. Used for the unrecoverable
// failures that abort a stage on their own.
func Single(err error) []error {
	return []error{err}
}
