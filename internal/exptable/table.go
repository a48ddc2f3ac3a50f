package exptable

import (
	"context"
	_ "embed"
	"fmt"
	"sort"

	"github.com/neo84716/ro-data/internal/domain"
	"github.com/neo84716/ro-data/internal/logger"
	"github.com/neo84716/ro-data/internal/utils"
)

//go:embed data/default.yaml
var defaultTable []byte

// Data is the on-disk layout of an experience table file
type Data struct {
	Early       map[domain.CharacterCategory][]domain.LevelData `yaml:"early"`
	Specialized map[domain.CharacterCategory][]domain.LevelData `yaml:"specialized"`
	Mid         []domain.LevelData                              `yaml:"mid"`
	High        []domain.LevelData                              `yaml:"high"`
}

type levels map[int]float64

// Table answers per-level experience requirements. It is immutable after
// construction and safe for concurrent use.
type Table struct {
	early       map[domain.CharacterCategory]levels
	specialized map[domain.CharacterCategory]levels
	mid         levels
	high        levels
}

// New indexes table data, rejecting non-positive requirements and duplicate levels
func New(d Data) (*Table, error) {
	t := &Table{
		early:       make(map[domain.CharacterCategory]levels, len(d.Early)),
		specialized: make(map[domain.CharacterCategory]levels, len(d.Specialized)),
	}
	var err error
	for c, rows := range d.Early {
		if t.early[c], err = index("early."+string(c), rows); err != nil {
			return nil, err
		}
	}
	for c, rows := range d.Specialized {
		if t.specialized[c], err = index("specialized."+string(c), rows); err != nil {
			return nil, err
		}
	}
	if t.mid, err = index("mid", d.Mid); err != nil {
		return nil, err
	}
	if t.high, err = index("high", d.High); err != nil {
		return nil, err
	}
	return t, nil
}

func index(name string, rows []domain.LevelData) (levels, error) {
	out := make(levels, len(rows))
	for _, r := range rows {
		if r.Level < 1 || r.RequiredExp <= 0 {
			return nil, fmt.Errorf("%s: %s level=%d required_exp=%g", ErrContextInvalidEntry, name, r.Level, r.RequiredExp)
		}
		if _, dup := out[r.Level]; dup {
			return nil, fmt.Errorf("%s: %s duplicate level %d", ErrContextInvalidEntry, name, r.Level)
		}
		out[r.Level] = r.RequiredExp
	}
	return out, nil
}

// Load reads a table from path, or the embedded default when path is empty
func Load(path string) (*Table, error) {
	var d Data
	if path == "" {
		if err := utils.DecodeYAML(defaultTable, &d); err != nil {
			return nil, fmt.Errorf("failed to decode embedded experience table: %w", err)
		}
	} else if err := utils.LoadYAML(path, &d); err != nil {
		return nil, err
	}
	return New(d)
}

// RequiredExp returns the experience needed to go from level to level+1.
// The second value is false when the character is at cap or the table has no entry.
func (t *Table) RequiredExp(level int, c domain.CharacterCategory) (float64, bool) {
	if !c.Valid() || level < 1 || level >= c.MaxLevel() {
		return 0, false
	}
	next := level + 1

	var src levels
	switch {
	case c.Capped() && next > domain.CappedMaxLevel:
		return 0, false
	case c.Specialized() && next <= domain.MidBracketEnd:
		src = t.specialized[c]
	case next > domain.MidBracketEnd:
		src = t.high
	case next >= domain.MidBracketStart:
		src = t.mid
	default:
		src = t.early[c.EarlyTable()]
	}

	v, ok := src[level]
	if !ok || v <= 0 {
		return 0, false
	}
	return v, true
}

// Gaps lists every level below the category cap that has no requirement
func (t *Table) Gaps(c domain.CharacterCategory) []int {
	var missing []int
	for l := 1; l < c.MaxLevel(); l++ {
		if _, ok := t.RequiredExp(l, c); !ok {
			missing = append(missing, l)
		}
	}
	return missing
}

// Check logs every category with gaps. In strict mode a gap is an error.
func (t *Table) Check(ctx context.Context, strict bool) error {
	log := logger.FromContext(ctx)
	var gapped []string
	for _, c := range domain.AllCategories {
		missing := t.Gaps(c)
		if len(missing) == 0 {
			continue
		}
		log.Warn(LogMsgTableGap, LogFieldCategory, c, LogFieldMissing, missing)
		gapped = append(gapped, string(c))
	}
	if strict && len(gapped) > 0 {
		sort.Strings(gapped)
		return fmt.Errorf("%s: %v", ErrContextGaps, gapped)
	}
	return nil
}

// Summary describes one category's coverage
type Summary struct {
	Category domain.CharacterCategory `json:"category"`
	MaxLevel int                      `json:"max_level"`
	TotalExp float64                  `json:"total_exp"`
	Missing  []int                    `json:"missing_levels,omitempty"`
}

// Summaries reports coverage and the experience from level 1 to cap for every category
func (t *Table) Summaries() []Summary {
	out := make([]Summary, 0, len(domain.AllCategories))
	for _, c := range domain.AllCategories {
		s := Summary{Category: c, MaxLevel: c.MaxLevel()}
		for l := 1; l < c.MaxLevel(); l++ {
			if v, ok := t.RequiredExp(l, c); ok {
				s.TotalExp += v
			} else {
				s.Missing = append(s.Missing, l)
			}
		}
		out = append(out, s)
	}
	return out
}
