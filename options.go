package fsa

// DefaultDeterminizeWorkLimit bounds the number of subsets created by subset
// construction when no WithDeterminizeWorkLimit option is given.
const DefaultDeterminizeWorkLimit = 10000

type options struct {
	determinizeWorkLimit int
}

// Option configures the operations that may need to determinize.
type Option func(*options)

// WithDeterminizeWorkLimit sets the maximum number of DFA states subset
// construction may create before giving up with ErrTooComplex. Values <= 0
// select DefaultDeterminizeWorkLimit.
func WithDeterminizeWorkLimit(limit int) Option {
	return func(o *options) {
		o.determinizeWorkLimit = limit
	}
}

func newOptions(opts ...Option) *options {
	o := &options{
		determinizeWorkLimit: DefaultDeterminizeWorkLimit,
	}
	for _, fn := range opts {
		fn(o)
	}
	if o.determinizeWorkLimit <= 0 {
		o.determinizeWorkLimit = DefaultDeterminizeWorkLimit
	}
	return o
}
