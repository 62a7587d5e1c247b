package seed

import "fmt"

const (
	CodeLoad       = "loadError"
	CodeStoreQuery = "storeQueryError"
	CodeStoreWrite = "storeWriteError"
)

// LoadError reports a fixture file that is missing or is not a JSON array of objects.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: fixture %s: %v", CodeLoad, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// StoreQueryError reports a failed read (existence probe or count).
type StoreQueryError struct {
	Collection string
	Op         string
	Err        error
}

func (e *StoreQueryError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", CodeStoreQuery, e.Op, e.Collection, e.Err)
}

func (e *StoreQueryError) Unwrap() error { return e.Err }

// StoreWriteError reports the record whose write aborted the run.
type StoreWriteError struct {
	Collection string
	Index      int
	Name       string
	Err        error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("%s: %s[%d] %q: %v", CodeStoreWrite, e.Collection, e.Index, e.Name, e.Err)
}

func (e *StoreWriteError) Unwrap() error { return e.Err }
