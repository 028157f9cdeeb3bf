package itinerary

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/sarchlab/m2sched/insts"
)

// MaxDepth is the largest number of cycles a class may span.
const MaxDepth = 1 << 16

// ErrDepthExceeded is returned by Validate for a class spanning more than
// MaxDepth cycles.
var ErrDepthExceeded = errors.New("class depth exceeds limit")

// LoadFile loads an itinerary from a JSON or YAML file. The format is chosen
// by extension: .yaml and .yml are YAML, anything else is JSON.
func LoadFile(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read itinerary file: %w", err)
	}

	data := &Data{}
	if isYAML(path) {
		err = yaml.Unmarshal(raw, data)
	} else {
		err = json.Unmarshal(raw, data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse itinerary: %w", err)
	}

	return data, nil
}

// SaveFile writes the itinerary to a JSON or YAML file, chosen by extension.
func (d *Data) SaveFile(path string) error {
	var (
		raw []byte
		err error
	)

	if isYAML(path) {
		raw, err = yaml.Marshal(d)
	} else {
		raw, err = json.MarshalIndent(d, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to serialize itinerary: %w", err)
	}

	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write itinerary file: %w", err)
	}

	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// Validate checks that every name resolves and every stage that holds a unit
// names at least one.
func (d *Data) Validate() error {
	if d == nil {
		return fmt.Errorf("itinerary is nil")
	}
	if len(d.Units) > MaxUnits {
		return fmt.Errorf("at most %d units are supported, got %d", MaxUnits, len(d.Units))
	}
	if d.IssueWidth < 0 {
		return fmt.Errorf("issue_width must be >= 0")
	}

	units := make(map[string]bool, len(d.Units))
	for _, u := range d.Units {
		if u == "" {
			return fmt.Errorf("unit names must not be empty")
		}
		if units[u] {
			return fmt.Errorf("duplicate unit %q", u)
		}
		units[u] = true
	}

	classes := make(map[string]bool, len(d.Classes))
	for _, c := range d.Classes {
		if c.Name == "" {
			return fmt.Errorf("class names must not be empty")
		}
		if classes[c.Name] {
			return fmt.Errorf("duplicate class %q", c.Name)
		}
		classes[c.Name] = true

		for i, s := range c.Stages {
			if err := validateStage(s, units); err != nil {
				return fmt.Errorf("class %q stage %d: %w", c.Name, i, err)
			}
		}

		if err := validateDepth(c.Stages); err != nil {
			return fmt.Errorf("class %q: %w", c.Name, err)
		}
	}

	for mnemonic, className := range d.OpClasses {
		if _, ok := insts.LookupOp(mnemonic); !ok {
			return fmt.Errorf("op_classes: unknown opcode %q", mnemonic)
		}
		if !classes[className] {
			return fmt.Errorf("op_classes: opcode %q maps to unknown class %q",
				mnemonic, className)
		}
	}

	for _, mnemonic := range d.ZeroCost {
		if _, ok := insts.LookupOp(mnemonic); !ok {
			return fmt.Errorf("zero_cost: unknown opcode %q", mnemonic)
		}
	}

	return nil
}

func validateStage(s StageSpec, units map[string]bool) error {
	if s.Kind != Required && s.Kind != Reserved {
		return fmt.Errorf("invalid reservation kind %d", uint8(s.Kind))
	}

	if s.Cycles > 0 && len(s.Units) == 0 {
		return fmt.Errorf("stage holds no unit for %d cycles", s.Cycles)
	}

	for _, u := range s.Units {
		if !units[u] {
			return fmt.Errorf("unknown unit %q", u)
		}
	}

	return nil
}

// validateDepth checks that a class spans at most MaxDepth cycles.
func validateDepth(stages []StageSpec) error {
	var depth, cur int64
	for _, s := range stages {
		next := int64(s.Cycles)
		if s.NextCycles != nil && *s.NextCycles >= 0 {
			next = int64(*s.NextCycles)
		}

		if int64(s.Cycles) > MaxDepth || next > MaxDepth {
			return fmt.Errorf("%w: stage of %d cycles, next %d, limit %d",
				ErrDepthExceeded, s.Cycles, next, MaxDepth)
		}

		depth = max(depth, cur+int64(s.Cycles))
		if depth > MaxDepth {
			return fmt.Errorf("%w: spans %d cycles, limit %d",
				ErrDepthExceeded, depth, MaxDepth)
		}

		cur += next
	}

	return nil
}

// Clone returns a deep copy of the itinerary.
func (d *Data) Clone() *Data {
	if d == nil {
		return nil
	}

	c := &Data{
		Units:      append([]string(nil), d.Units...),
		IssueWidth: d.IssueWidth,
		ZeroCost:   append([]string(nil), d.ZeroCost...),
	}

	if d.OpClasses != nil {
		c.OpClasses = make(map[string]string, len(d.OpClasses))
		for k, v := range d.OpClasses {
			c.OpClasses[k] = v
		}
	}

	for _, cls := range d.Classes {
		cc := ClassSpec{Name: cls.Name}
		for _, s := range cls.Stages {
			sc := StageSpec{
				Cycles: s.Cycles,
				Units:  append([]string(nil), s.Units...),
				Kind:   s.Kind,
			}
			if s.NextCycles != nil {
				sc.NextCycles = NextCycles(*s.NextCycles)
			}
			cc.Stages = append(cc.Stages, sc)
		}
		c.Classes = append(c.Classes, cc)
	}

	return c
}
