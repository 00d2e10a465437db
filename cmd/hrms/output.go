package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jrsteele09/go-hrms-client/internal/errors"
	"gopkg.in/yaml.v3"
)

// print renders v in the selected format. YAML output goes through JSON first
// so both formats use the API's field names.
func (a *app) print(v any) error {
	switch strings.ToLower(a.format) {
	case "json", "":
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "yml":
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var generic any
		if err := json.Unmarshal(raw, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: output format %q", errors.ErrUnsupported, a.format)
	}
}
