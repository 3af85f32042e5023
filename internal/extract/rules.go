package extract

import (
	"fmt"
	"os"
	"sort"

	"github.com/andybalholm/cascadia"
	"gopkg.in/yaml.v3"
)

// Field reads one value from a container. An empty Selector means the
// container node itself; an empty Attr means the node's text.
type Field struct {
	Name     string `yaml:"name"`
	Selector string `yaml:"selector,omitempty"`
	Attr     string `yaml:"attr,omitempty"`
}

// List is a repeated group evaluated relative to the parent container.
type List struct {
	Name string `yaml:"name"`
	Rule Rule   `yaml:"rule"`
}

type Rule struct {
	Container string  `yaml:"container,omitempty"`
	Fields    []Field `yaml:"fields,omitempty"`
	Lists     []List  `yaml:"lists,omitempty"`
}

// RuleSet maps an operation kind to the rule used for its pages.
type RuleSet map[string]Rule

func (rs RuleSet) Kinds() []string {
	out := make([]string, 0, len(rs))
	for k := range rs {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

// Clone returns a deep copy of r that shares no slices with it.
func (r Rule) Clone() Rule {
	out := Rule{Container: r.Container}
	if r.Fields != nil {
		out.Fields = append([]Field(nil), r.Fields...)
	}
	if r.Lists != nil {
		out.Lists = make([]List, len(r.Lists))
		for i, l := range r.Lists {
			out.Lists[i] = List{Name: l.Name, Rule: l.Rule.Clone()}
		}
	}

	return out
}

// Override returns a deep copy of rs where every kind present in over
// replaces the rule of the same kind.
func (rs RuleSet) Override(over RuleSet) RuleSet {
	out := make(RuleSet, len(rs)+len(over))
	for k, r := range rs {
		out[k] = r.Clone()
	}
	for k, r := range over {
		out[k] = r.Clone()
	}

	return out
}

// Validate compiles every selector so a broken rule file is reported at
// load time instead of silently matching nothing.
func (rs RuleSet) Validate() error {
	for _, kind := range rs.Kinds() {
		if err := validateRule(rs[kind]); err != nil {
			return fmt.Errorf("rule %q: %w", kind, err)
		}
	}

	return nil
}

func validateRule(r Rule) error {
	if r.Container != "" {
		if _, err := cascadia.Compile(r.Container); err != nil {
			return fmt.Errorf("container %q: %w", r.Container, err)
		}
	}

	seen := map[string]bool{}
	for _, f := range r.Fields {
		if f.Name == "" {
			return fmt.Errorf("field with selector %q has no name", f.Selector)
		}
		if seen[f.Name] {
			return fmt.Errorf("duplicate field %q", f.Name)
		}
		seen[f.Name] = true

		if f.Selector == "" {
			continue
		}
		if _, err := cascadia.Compile(f.Selector); err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
	}

	for _, l := range r.Lists {
		if l.Name == "" {
			return fmt.Errorf("list without name")
		}
		if err := validateRule(l.Rule); err != nil {
			return fmt.Errorf("list %q: %w", l.Name, err)
		}
	}

	return nil
}

func LoadRuleSet(path string) (RuleSet, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rs RuleSet
	if err := yaml.Unmarshal(b, &rs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := rs.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return rs, nil
}

func (rs RuleSet) YAML() ([]byte, error) {
	return yaml.Marshal(map[string]Rule(rs))
}
