package portal

import (
	"net/url"
	"sort"
)

// Form is the set of fields posted back to the portal, keyed by field name.
type Form map[string]string

// With returns a copy of the form with `changes` laid over it.
func (f Form) With(changes Form) Form {
	out := make(Form, len(f)+len(changes))
	for k, v := range f {
		out[k] = v
	}
	for k, v := range changes {
		out[k] = v
	}
	return out
}

// Without returns a copy of the form without the given fields.
func (f Form) Without(names ...string) Form {
	out := f.With(nil)
	for _, name := range names {
		delete(out, name)
	}
	return out
}

func (f Form) Values() url.Values {
	values := make(url.Values, len(f))
	for k, v := range f {
		values.Set(k, v)
	}
	return values
}

// Names lists the fields in the form in sorted order.
func (f Form) Names() []string {
	names := make([]string, 0, len(f))
	for k := range f {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
