package layout

import "errors"

// Domain errors for layout operations.
var (
	// ErrNotInitialized indicates Tick was called on a state that never went
	// through Initialize. This is a wiring bug in the caller.
	ErrNotInitialized = errors.New("layout: simulation not initialized")

	// ErrNegativeDelta indicates a negative or non-finite frame delta.
	ErrNegativeDelta = errors.New("layout: delta time must be finite and non-negative")

	// ErrParameterBounds indicates a layout constant outside its valid range.
	ErrParameterBounds = errors.New("layout: parameter out of valid bounds")

	// ErrDuplicateNode indicates two node descriptors share an id.
	ErrDuplicateNode = errors.New("layout: duplicate node id")

	// ErrUnknownParam indicates SetParam was given a name it does not know.
	ErrUnknownParam = errors.New("layout: unknown parameter")
)
