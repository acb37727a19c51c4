package pool

type ClosedPoolError struct{}

func (e ClosedPoolError) Error() string {
	return "pool is closed"
}
