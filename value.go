package lazycell

// Value binds a producer to a cell at construction time, so that access takes
// no arguments. It is the ergonomic way to declare a package-level lazy
// singleton:
//
//	var emailRegex = lazycell.NewValue(func() (*regexp.Regexp, error) {
//		return regexp.Compile(longPattern)
//	})
//
//	func validate(s string) (bool, error) {
//		re, err := emailRegex.Load()
//		if err != nil {
//			return false, err
//		}
//		return re.MatchString(s), nil
//	}
//
// The sugar is thin: Load is exactly Cell.Get with the bound producer, with
// the same at-most-once and poisoning behavior.
type Value[T any] struct {
	cell     *Cell[T]
	producer func() (T, error)
}

// NewValue returns a Value that will compute its contents with producer on
// first access.
func NewValue[T any](producer func() (T, error)) *Value[T] {
	return &Value[T]{
		cell:     New[T](),
		producer: producer,
	}
}

// Load returns the value, computing it if this is the first access.
func (v *Value[T]) Load() (T, error) {
	ptr, err := v.cell.Get(v.producer)
	if err != nil {
		var zero T
		return zero, err
	}
	return *ptr, nil
}

// MustLoad is Load for callers that treat initialization failure as fatal.
func (v *Value[T]) MustLoad() T {
	value, err := v.Load()
	if err != nil {
		panic(err)
	}
	return value
}

// Initialize forces the value to be computed now instead of on first use, for
// callers that want to pay the cost at startup. It is idempotent and safe to
// call concurrently with Load.
func (v *Value[T]) Initialize() error {
	return v.cell.Initialize(v.producer)
}

// Ready reports whether the value has been computed.
func (v *Value[T]) Ready() bool {
	return v.cell.Ready()
}
