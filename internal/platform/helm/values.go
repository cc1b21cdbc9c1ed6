package helm

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Values represents chart values as a map.
type Values map[string]any

// Merge combines multiple Values maps with later maps taking precedence.
func Merge(valueMaps ...Values) Values {
	result := make(Values)
	for _, m := range valueMaps {
		for k, v := range m {
			result[k] = v
		}
	}
	return result
}

// FromYAML parses YAML bytes, typically a user-supplied value file,
// into Values.
func FromYAML(data []byte) (Values, error) {
	var values Values
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse YAML values: %w", err)
	}
	return values, nil
}
