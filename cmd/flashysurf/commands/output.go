package commands

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	jsoniter "github.com/json-iterator/go"
)

var formats = []string{"table", "json", "yaml"}

// renderValue writes v in format; table output is delegated to table.
func renderValue(w io.Writer, format string, v any, table func(io.Writer) error) error {
	switch format {
	case "table", "":
		return table(w)
	case "json":
		enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w, yaml.Indent(2))
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format: %s (supported: %v)", format, formats)
	}
}
