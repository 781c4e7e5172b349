package async

import "sync"

// FormState is a point-in-time copy of a Form's state.
type FormState[T any] struct {
	Values  T                 `json:"values"`
	Errors  map[string]string `json:"errors"`
	Touched map[string]bool   `json:"touched"`
}

// Form keeps form values with per-field errors and touched flags.
type Form[T any] struct {
	initial T

	mu      sync.RWMutex
	values  T
	errors  map[string]string
	touched map[string]bool
}

// NewForm creates a form holding initial.
func NewForm[T any](initial T) *Form[T] {
	return &Form[T]{
		initial: initial,
		values:  initial,
		errors:  make(map[string]string),
		touched: make(map[string]bool),
	}
}

// Update applies fn to the values.
func (f *Form[T]) Update(fn func(values *T)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.values)
}

// SetValues replaces all values.
func (f *Form[T]) SetValues(values T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = values
}

// SetError records an error for field. An empty message clears it.
func (f *Form[T]) SetError(field, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if message == "" {
		delete(f.errors, field)
		return
	}
	f.errors[field] = message
}

// SetTouched marks field as touched or untouched.
func (f *Form[T]) SetTouched(field string, touched bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched[field] = touched
}

// Values returns the current values.
func (f *Form[T]) Values() T {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.values
}

// Reset restores the initial values and clears errors and touched flags.
func (f *Form[T]) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = f.initial
	f.errors = make(map[string]string)
	f.touched = make(map[string]bool)
}

// State returns a copy of the current state.
func (f *Form[T]) State() FormState[T] {
	f.mu.RLock()
	defer f.mu.RUnlock()
	errs := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		errs[k] = v
	}
	touched := make(map[string]bool, len(f.touched))
	for k, v := range f.touched {
		touched[k] = v
	}
	return FormState[T]{Values: f.values, Errors: errs, Touched: touched}
}
