package field

import (
	"fmt"
	"math"
	"sort"
)

// Entry is a named field together with its formula for display.
type Entry struct {
	Name    string
	Formula string
	Field   Field
}

type Registry struct {
	fields map[string]Entry
}

func NewRegistry() *Registry {
	r := &Registry{fields: make(map[string]Entry)}

	r.Register("linear", "x - y", Func(func(x, y float64) float64 { return x - y }))
	r.Register("decay", "-y", Func(func(x, y float64) float64 { return -y }))
	r.Register("logistic", "y(1 - y)", Func(func(x, y float64) float64 { return y * (1 - y) }))
	r.Register("sine", "sin(x) - y", Func(func(x, y float64) float64 { return math.Sin(x) - y }))
	r.Register("quadratic", "x^2 - y", Func(func(x, y float64) float64 { return x*x - y }))
	r.Register("ratio", "x / y", Func(func(x, y float64) float64 { return x / y }))

	return r
}

// Register adds or replaces a named field.
func (r *Registry) Register(name, formula string, f Field) {
	r.fields[name] = Entry{Name: name, Formula: formula, Field: f}
}

func (r *Registry) Get(name string) (Field, error) {
	e, ok := r.fields[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	return e.Field, nil
}

// Entries returns all registered fields sorted by name.
func (r *Registry) Entries() []Entry {
	entries := make([]Entry, 0, len(r.fields))
	for _, e := range r.fields {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.fields))
	for _, e := range r.Entries() {
		names = append(names, e.Name)
	}
	return names
}

var defaultRegistry = NewRegistry()

// Lookup resolves a built-in field by name.
func Lookup(name string) (Field, error) {
	return defaultRegistry.Get(name)
}

// Builtins lists the built-in fields.
func Builtins() []Entry {
	return defaultRegistry.Entries()
}
