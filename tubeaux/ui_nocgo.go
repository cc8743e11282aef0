//go:build tinygo || !cgo

package tubeaux

import "fmt"

func ui(cfg UIConfig) error {
	return fmt.Errorf("%w: require cgo for UI rendering", ErrNoContext)
}
