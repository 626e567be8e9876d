package field

import (
	"fmt"
	"sort"

	"github.com/san-kum/seadrift/internal/geo"
)

var models = map[string]func(geo.Domain) Model{
	"gyre":    func(d geo.Domain) Model { return NewGyre(d) },
	"uniform": func(geo.Domain) Model { return NewUniform(0.2, 0.05, 3.0, 2.0) },
	"calm":    func(geo.Domain) Model { return Calm{} },
}

// NewModel constructs a registered synthetic model by name.
func NewModel(name string, dom geo.Domain) (Model, error) {
	fn, ok := models[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModel, name)
	}
	return fn(dom), nil
}

// ListModels returns the registered model names, sorted.
func ListModels() []string {
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
