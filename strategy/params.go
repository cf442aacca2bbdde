package strategy

import "fmt"

// Params is the flat option mapping handed to Init. Unrecognized keys are
// ignored by strategies; missing required keys are a configuration error.
type Params map[string]any

// Int reads an integer parameter. YAML and JSON decoders produce int,
// int64, or float64 depending on the source, so all three are accepted.
func (p Params) Int(key string) (int, bool) {
	v, ok := p[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

// Float reads a numeric parameter.
func (p Params) Float(key string) (float64, bool) {
	v, ok := p[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// ConfigurationError reports an invalid or missing strategy parameter. It is
// fatal: a run is never started with a misconfigured strategy.
type ConfigurationError struct {
	Strategy string
	Param    string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("strategy %s: %s", e.Strategy, e.Reason)
	}
	return fmt.Sprintf("strategy %s: parameter %q: %s", e.Strategy, e.Param, e.Reason)
}
