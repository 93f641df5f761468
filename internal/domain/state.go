package domain

// FetchStatus enumerates the lifecycle of a single query.
type FetchStatus int

const (
	NotStarted FetchStatus = iota
	Loading
	Succeeded
	Failed
)

func (s FetchStatus) String() string {
	switch s {
	case Loading:
		return "loading"
	case Succeeded:
		return "success"
	case Failed:
		return "failure"
	default:
		return "not_started"
	}
}

// FetchState is the state of one query slot. The zero value is NotStarted.
// Data is only meaningful in the Succeeded state and Err only in Failed, so an
// empty but resolved result is never confused with one that is still loading.
type FetchState[T any] struct {
	status FetchStatus
	data   T
	err    error
}

// LoadingState returns a state in the Loading variant.
func LoadingState[T any]() FetchState[T] {
	return FetchState[T]{status: Loading}
}

// SuccessState returns a state in the Succeeded variant carrying data.
func SuccessState[T any](data T) FetchState[T] {
	return FetchState[T]{status: Succeeded, data: data}
}

// FailureState returns a state in the Failed variant carrying err.
func FailureState[T any](err error) FetchState[T] {
	return FetchState[T]{status: Failed, err: err}
}

func (s FetchState[T]) Status() FetchStatus { return s.status }
func (s FetchState[T]) IsLoading() bool     { return s.status == Loading }

// Data returns the resolved value and whether the state is Succeeded.
func (s FetchState[T]) Data() (T, bool) {
	return s.data, s.status == Succeeded
}

// Err returns the failure, or nil for every other variant.
func (s FetchState[T]) Err() error {
	if s.status != Failed {
		return nil
	}
	return s.err
}
