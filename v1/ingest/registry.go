package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// RegistryOrganization is the part of a registry Organization that
// ingestion reads.
type RegistryOrganization struct {
	Type       string `json:"@type"`
	Name       string `json:"name"`
	Identifier struct {
		Value string `json:"value"`
	} `json:"identifier"`
	Brand       json.RawMessage `json:"brand"`
	ProductFeed struct {
		URL string `json:"url"`
	} `json:"cmp:productFeed"`
}

func (o RegistryOrganization) URN() string {
	return strings.TrimSpace(o.Identifier.Value)
}

// BrandNames returns the names of brand, which may be one Brand or a list.
func (o RegistryOrganization) BrandNames() []string {
	type brand struct {
		Name string `json:"name"`
	}
	var many []brand
	if err := json.Unmarshal(o.Brand, &many); err != nil {
		var one brand
		if err := json.Unmarshal(o.Brand, &one); err != nil {
			return nil
		}
		many = []brand{one}
	}
	names := make([]string, 0, len(many))
	for _, b := range many {
		if name := strings.TrimSpace(b.Name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// ParseRegistry accepts a single Organization, a list of them or an object
// with an "organizations" list.
func ParseRegistry(body []byte) ([]RegistryOrganization, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("registry is empty")
	}

	var orgs []RegistryOrganization
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &orgs); err != nil {
			return nil, fmt.Errorf("decode registry: %w", err)
		}
		return orgs, nil
	}

	var wrapped struct {
		Organizations []RegistryOrganization `json:"organizations"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}
	if wrapped.Organizations != nil {
		return wrapped.Organizations, nil
	}

	var one RegistryOrganization
	if err := json.Unmarshal(trimmed, &one); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}
	if one.Type != "Organization" {
		return nil, fmt.Errorf("registry must describe an Organization, got @type %q", one.Type)
	}
	return []RegistryOrganization{one}, nil
}

// FilterOrganizations keeps organizations with a URN listed in urns. An empty
// filter keeps every organization that has a URN.
func FilterOrganizations(orgs []RegistryOrganization, urns []string) []RegistryOrganization {
	out := make([]RegistryOrganization, 0, len(orgs))
	for _, o := range orgs {
		if o.URN() == "" {
			continue
		}
		if len(urns) > 0 && !slices.Contains(urns, o.URN()) {
			continue
		}
		out = append(out, o)
	}
	return out
}
