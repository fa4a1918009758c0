package crawler

// Strategy is one way of extracting a field from a review fragment
type Strategy[T any] struct {
	Name    string
	Extract func(Node) (T, bool)
}

// Chain is an ordered list of strategies, most specific first
type Chain[T any] []Strategy[T]

// Apply runs the strategies in order and returns the first hit along with
// the name of the strategy that produced it
func (c Chain[T]) Apply(n Node) (T, string, bool) {
	for _, s := range c {
		if v, ok := run(s, n); ok {
			return v, s.Name, true
		}
	}
	var zero T
	return zero, "", false
}

// run executes one strategy; a panicking strategy counts as a miss
func run[T any](s Strategy[T], n Node) (v T, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			v, ok = zero, false
		}
	}()
	if s.Extract == nil {
		return v, false
	}
	return s.Extract(n)
}
