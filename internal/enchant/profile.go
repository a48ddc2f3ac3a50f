package enchant

import (
	"fmt"
	"strings"

	"github.com/neo84716/ro-data/internal/domain"
	"github.com/neo84716/ro-data/internal/utils"
)

// SlotDefinition is one enchantable slot and its option table
type SlotDefinition struct {
	SlotID  int                      `json:"slot_id" yaml:"slot_id"`
	Name    string                   `json:"name" yaml:"name"`
	Options []domain.WeightedOutcome `json:"options" yaml:"options"`
}

// Set exposes the slot as a weighted set for the draw engine
func (d SlotDefinition) Set() domain.WeightedSet {
	return domain.WeightedSet{ID: fmt.Sprintf("slot-%d", d.SlotID), Name: d.Name, Outcomes: d.Options}
}

// Profile groups equipment that shares the same ordered slots
type Profile struct {
	ID        string           `json:"id" yaml:"id"`
	Name      string           `json:"name" yaml:"name"`
	Equipment []string         `json:"equipment" yaml:"equipment"`
	Slots     []SlotDefinition `json:"slots" yaml:"slots"`
}

// slotIndex returns the position of slotID in the profile
func (p Profile) slotIndex(slotID int) (int, bool) {
	for i, s := range p.Slots {
		if s.SlotID == slotID {
			return i, true
		}
	}
	return 0, false
}

func (p Profile) hasEquipment(name string) bool {
	for _, e := range p.Equipment {
		if e == name {
			return true
		}
	}
	return false
}

func (p Profile) validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: profile %q has no id", domain.ErrInvalidInput, p.Name)
	}
	if len(p.Slots) == 0 {
		return fmt.Errorf("%w: profile %s has no slots", domain.ErrInvalidInput, p.ID)
	}
	seen := make(map[int]bool, len(p.Slots))
	for _, s := range p.Slots {
		if seen[s.SlotID] {
			return fmt.Errorf("%w: profile %s repeats slot %d", domain.ErrInvalidInput, p.ID, s.SlotID)
		}
		seen[s.SlotID] = true
	}
	return nil
}

// ProfileFile is the on-disk layout of configs/enchant_profiles.yaml
type ProfileFile struct {
	Profiles []Profile `yaml:"profiles"`
}

// LoadProfiles reads enchant profiles from a YAML file
func LoadProfiles(path string) ([]Profile, error) {
	var f ProfileFile
	if err := utils.LoadYAML(path, &f); err != nil {
		return nil, fmt.Errorf("failed to load enchant profiles: %w", err)
	}
	return f.Profiles, nil
}
