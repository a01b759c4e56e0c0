package class

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// BundleFromYAML decodes a default-data bundle from a YAML mapping. The
// bundle carries no methods; it is meant to feed shared defaults (labels,
// limits, seed data) into several types through encapsulation.
func BundleFromYAML(name string, src []byte) (*Bundle, error) {
	var defaults map[string]any
	if err := yaml.Unmarshal(src, &defaults); err != nil {
		return nil, fmt.Errorf("%w: bundle %q: %v", ErrInvalidArgument, name, err)
	}
	if defaults == nil {
		defaults = map[string]any{}
	}
	if err := checkData(name, defaults); err != nil {
		return nil, err
	}
	return &Bundle{Name: name, Defaults: defaults}, nil
}
