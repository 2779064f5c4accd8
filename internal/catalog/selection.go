package catalog

import (
	"certificate-system/internal/certificates"
)

type SelectionState int

const (
	Unselected SelectionState = iota
	Selected
)

func (s SelectionState) String() string {
	if s == Selected {
		return "selected"
	}
	return "unselected"
}

// SelectionChange describes one transition of a Controller.
type SelectionChange[T Record] struct {
	Previous    T
	HadPrevious bool
	Current     T
	State       SelectionState
	Defaults    *Defaults
}

type ControllerOption[T Record] func(*Controller[T])

// WithOnChange registers the selection-changed notification.
func WithOnChange[T Record](fn func(SelectionChange[T])) ControllerOption[T] {
	return func(c *Controller[T]) {
		c.onChange = fn
	}
}

// WithInitialSelection starts the controller in Selected state when idOrLabel resolves.
// No defaults are emitted for the initial selection.
func WithInitialSelection[T Record](idOrLabel string) ControllerOption[T] {
	return func(c *Controller[T]) {
		if idOrLabel == "" {
			return
		}
		if r, ok := c.store.Resolve(idOrLabel); ok {
			c.current = r
			c.state = Selected
		}
	}
}

// Controller tracks which catalog record a form has picked and pushes the record's
// defaults to the form through a PatchEmitter. It is owned by a single caller and is not
// safe for concurrent use.
type Controller[T Record] struct {
	store    *Store[T]
	resolve  Resolver[T]
	emitter  certificates.PatchEmitter
	onChange func(SelectionChange[T])

	state   SelectionState
	current T
}

func NewController[T Record](store *Store[T], resolve Resolver[T], emitter certificates.PatchEmitter, opts ...ControllerOption[T]) *Controller[T] {
	c := &Controller[T]{
		store:   store,
		resolve: resolve,
		emitter: emitter,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller[T]) State() SelectionState {
	return c.state
}

// Current returns the selected record.
func (c *Controller[T]) Current() (T, bool) {
	return c.current, c.state == Selected
}

// Select handles a selection event. A resolvable id or label that differs from the
// current selection selects that record and emits its defaults, overwriting whatever the
// form holds. An empty or unknown value, or the current selection again, clears the
// selection. Clearing never reverts defaults applied earlier.
func (c *Controller[T]) Select(idOrLabel string) (T, bool) {
	prev, hadPrev := c.Current()

	var next T
	ok := false
	if idOrLabel != "" {
		next, ok = c.store.Resolve(idOrLabel)
	}
	if ok && hadPrev && next.RecordID() == prev.RecordID() {
		ok = false
	}

	change := SelectionChange[T]{Previous: prev, HadPrevious: hadPrev}
	if !ok {
		var zero T
		c.current = zero
		c.state = Unselected
		change.State = Unselected
		c.notify(change)
		return zero, false
	}

	c.current = next
	c.state = Selected
	change.Current = next
	change.State = Selected

	if c.resolve != nil {
		if d := c.resolve(next); d != nil && len(d.Fields) > 0 {
			change.Defaults = d
			if c.emitter != nil {
				c.emitter.Emit(d.Fields)
			}
		}
	}
	c.notify(change)
	return next, true
}

func (c *Controller[T]) notify(change SelectionChange[T]) {
	if c.onChange != nil {
		c.onChange(change)
	}
}
