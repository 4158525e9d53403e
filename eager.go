package lazycell

import "github.com/peterldowns/lazycell/internal/multierr"

// An Initializer is anything whose one-time initialization can be forced up
// front. Value implements it, as do the lazydb helpers.
type Initializer interface {
	Initialize() error
}

// InitializeAll eagerly forces each of the given initializers, in order, and
// returns every failure joined into a single error. A failure in one
// initializer does not stop the others from being forced.
//
// Each cell remains independent: InitializeAll imposes sequential forcing
// order but no cross-cell atomicity.
func InitializeAll(inits ...Initializer) error {
	var errs []error
	for _, init := range inits {
		errs = append(errs, init.Initialize())
	}
	return multierr.Join(errs...)
}
