// Package locale normalizes configured locale lists.
//
// Locales may be written either as bare codes or as objects carrying a code
// and optional metadata. Both forms decode into a Descriptor:
//
//	"locales": ["en", {"code": "fr", "iso": "fr-FR", "domain": "example.fr"}]
//
// Codes reduces a descriptor list to its codes. The order of the input is
// the order in which localized routes are generated, so it is preserved.
package locale

import (
	"encoding/json"
	"fmt"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Descriptor describes one configured locale.
type Descriptor struct {
	// Code is the locale code used in route names and path prefixes (e.g., "en").
	Code string `json:"code" yaml:"code"`

	// ISO is the language tag used for SEO attributes (e.g., "en-US").
	ISO string `json:"iso,omitempty" yaml:"iso,omitempty"`

	// Domain is the host serving this locale when locales live on different domains.
	Domain string `json:"domain,omitempty" yaml:"domain,omitempty"`

	// Name is a human readable label.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// descriptorObject avoids recursing into Descriptor's own unmarshalers.
type descriptorObject Descriptor

// UnmarshalJSON accepts either a bare code string or an object.
func (d *Descriptor) UnmarshalJSON(data []byte) error {
	var code string
	if err := json.Unmarshal(data, &code); err == nil {
		*d = Descriptor{Code: code}
		return nil
	}

	var obj descriptorObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("locale: expected code or object: %w", err)
	}
	*d = Descriptor(obj)
	return nil
}

// UnmarshalYAML accepts either a bare code scalar or a mapping.
func (d *Descriptor) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*d = Descriptor{Code: node.Value}
		return nil
	}

	var obj descriptorObject
	if err := node.Decode(&obj); err != nil {
		return fmt.Errorf("locale: expected code or mapping: %w", err)
	}
	*d = Descriptor(obj)
	return nil
}

// Tag parses the descriptor as a BCP 47 language tag.
// ISO is preferred over Code when set.
func (d Descriptor) Tag() (language.Tag, error) {
	if d.ISO != "" {
		return language.Parse(d.ISO)
	}
	return language.Parse(d.Code)
}

// FromCodes builds descriptors from plain codes.
func FromCodes(codes ...string) []Descriptor {
	descs := make([]Descriptor, len(codes))
	for i, code := range codes {
		descs[i] = Descriptor{Code: code}
	}
	return descs
}

// Codes returns the code of every descriptor in input order.
// Duplicates are passed through.
func Codes(descs []Descriptor) []string {
	codes := make([]string, 0, len(descs))
	for _, d := range descs {
		codes = append(codes, d.Code)
	}
	return codes
}

// Validate reports whether code is a well-formed BCP 47 language tag.
func Validate(code string) error {
	if code == "" {
		return fmt.Errorf("locale: empty code")
	}
	if _, err := language.Parse(code); err != nil {
		return fmt.Errorf("locale %q: %w", code, err)
	}
	return nil
}

// Contains reports whether codes contains code.
func Contains(codes []string, code string) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}
