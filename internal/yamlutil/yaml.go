// Package yamlutil wraps YAML parsing to isolate the external dependency.
// This allows swapping the underlying YAML library without modifying callers.
package yamlutil

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// ReadFile reads name from fsys and strictly unmarshals it into v.
func ReadFile(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	if err := UnmarshalStrict(data, v); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Flatten turns a decoded YAML tree into dotted keys. Map keys are joined
// with ".", list items use their index: {a: {b: [x, y]}} yields
// a.b.0=x and a.b.1=y. Null values are skipped.
func Flatten(tree any) map[string]string {
	out := make(map[string]string)
	flatten("", tree, out)
	return out
}

func flatten(prefix string, node any, out map[string]string) {
	switch n := node.(type) {
	case nil:
		return
	case map[string]any:
		for _, k := range sortedKeys(n) {
			flatten(join(prefix, k), n[k], out)
		}
	case map[any]any:
		converted := make(map[string]any, len(n))
		for k, v := range n {
			converted[fmt.Sprint(k)] = v
		}
		flatten(prefix, converted, out)
	case []any:
		for i, v := range n {
			flatten(join(prefix, strconv.Itoa(i)), v, out)
		}
	default:
		if prefix != "" {
			out[prefix] = fmt.Sprint(n)
		}
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
