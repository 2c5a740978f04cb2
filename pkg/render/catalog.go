package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadCatalog decodes a YAML (or JSON) catalog of the form
//
//	es:
//	  signup.title: Crea tu cuenta
//	  validation.email.required: El correo es obligatorio
func LoadCatalog(r io.Reader) (CatalogTranslator, error) {
	var raw map[string]map[string]string
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if err == io.EOF {
			return CatalogTranslator{}, nil
		}
		return nil, fmt.Errorf("render: decode catalog: %w", err)
	}

	out := make(CatalogTranslator, len(raw))
	for locale, messages := range raw {
		key := strings.TrimSpace(locale)
		if key == "" {
			continue
		}
		if out[key] == nil {
			out[key] = make(map[string]string, len(messages))
		}
		for k, v := range messages {
			out[key][strings.TrimSpace(k)] = v
		}
	}
	return out, nil
}

// LoadCatalogFile reads a catalog from path.
func LoadCatalogFile(path string) (CatalogTranslator, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("render: open catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}
