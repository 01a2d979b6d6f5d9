package distinfo

import "fmt"

// AlreadyInstalledError reports that a record with the same normalized
// name exists under the target root. It is the only error Mark returns
// that callers are expected to recover from.
type AlreadyInstalledError struct {
	Name     string
	Existing []string
}

func (e *AlreadyInstalledError) Error() string {
	return fmt.Sprintf("Package %s is already installed. Please uninstall first.", e.Name)
}
