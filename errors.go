package shotjpeg

import "github.com/pkg/errors"

var (
	// ErrInvalidInput is returned, wrapped with the offending detail, when the
	// pixel buffer cannot be encoded.
	ErrInvalidInput = errors.New("shotjpeg: invalid input")

	// ErrSink is matched by every error that the output writer reported.
	ErrSink = errors.New("shotjpeg: sink failure")
)

// sinkError keeps the writer's own error reachable through errors.Cause while
// still matching ErrSink with errors.Is.
type sinkError struct {
	err error
}

func (e *sinkError) Error() string { return ErrSink.Error() + ": " + e.err.Error() }

func (e *sinkError) Cause() error { return e.err }

func (e *sinkError) Unwrap() error { return e.err }

func (e *sinkError) Is(target error) bool { return target == ErrSink }

func invalidInput(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidInput, format, args...)
}
