package dict

import "fmt"

// ConfigurationError reports a missing or malformed dictionary. It is
// fatal at startup.
type ConfigurationError struct {
	Source string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dictionary %s: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("dictionary %s: %s", e.Source, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
