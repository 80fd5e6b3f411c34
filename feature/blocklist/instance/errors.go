package instance

import "fmt"

// FetchError reports a non-success response while reading an instance's
// block list.
type FetchError struct {
	Host       string
	StatusCode int
	Body       string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch domain blocks from %s: status %d: %s", e.Host, e.StatusCode, e.Body)
}

// WriteError reports a non-success response while creating, updating or
// deleting a block.
type WriteError struct {
	Host       string
	Domain     string
	StatusCode int
	Body       string
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write domain block %q to %s: status %d: %s", e.Domain, e.Host, e.StatusCode, e.Body)
}
