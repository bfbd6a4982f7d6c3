package network

import "fmt"

// Kind classifies transport failures.
type Kind string

const (
	MissingSchema   Kind = "MissingSchema"
	InvalidSchema   Kind = "InvalidSchema"
	InvalidURL      Kind = "InvalidURL"
	ConnectionError Kind = "ConnectionError"
	HTTPError       Kind = "HTTPError"
)

func (k Kind) Error() string {
	return string(k)
}

// Error is the only error type returned by Get.
// errors.Is matches it against its Kind.
type Error struct {
	Kind Kind
	URL  string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s - %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func wrap(kind Kind, rawURL string, err error) *Error {
	return &Error{Kind: kind, URL: rawURL, Err: err}
}
