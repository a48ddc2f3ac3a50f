package gacha

import (
	"fmt"
	"strings"

	"github.com/neo84716/ro-data/internal/domain"
	"github.com/neo84716/ro-data/internal/utils"
)

// PoolFile is the on-disk layout of configs/gacha_pools.yaml
type PoolFile struct {
	Pools []domain.WeightedSet `yaml:"pools"`
}

// LoadPools reads pool definitions. Structural validation happens on registration.
func LoadPools(path string) ([]domain.WeightedSet, error) {
	var f PoolFile
	if err := utils.LoadYAML(path, &f); err != nil {
		return nil, fmt.Errorf("failed to load gacha pools: %w", err)
	}
	return f.Pools, nil
}

// Row is one normalized line of a collected rate table
type Row struct {
	Name     string  `json:"name" validate:"required,max=200"`
	Rate     float64 `json:"rate" validate:"gte=0,lte=100"`
	Count    int     `json:"count,omitempty" validate:"gte=0,lte=9999"`
	Rarity   string  `json:"rarity,omitempty" validate:"omitempty,oneof=SS S A B C ss s a b c"`
	Category string  `json:"category,omitempty" validate:"max=50"`
}

var categoryKeywords = []struct {
	category string
	words    []string
}{
	{CategoryCard, []string{"卡片", "信封", "封印", "精髓", "能量", "瓶", "石", "card"}},
	{CategoryMaterial, []string{"箱", "卷軸", "原石", "礦石", "鐵", "鎚", "box", "scroll", "ore"}},
	{CategoryEquipment, []string{"服飾", "裝", "帽", "翅膀", "劍", "杖", "靴", "斗篷", "戒", "衣", "耳環", "墜子", "costume", "garment"}},
}

// InferCategory guesses an item category from keywords in its name
func InferCategory(name string) string {
	lower := strings.ToLower(name)
	for _, kc := range categoryKeywords {
		for _, w := range kc.words {
			if strings.Contains(lower, w) {
				return kc.category
			}
		}
	}
	return CategoryConsumable
}

// outcomeFromRow converts a row; ok is false for rows without a name or a positive rate
func outcomeFromRow(id string, r Row) (domain.WeightedOutcome, bool) {
	name := strings.TrimSpace(r.Name)
	if name == "" || r.Rate <= 0 {
		return domain.WeightedOutcome{}, false
	}

	rarity, ok := domain.ParseRarity(r.Rarity)
	if !ok {
		rarity = domain.InferRarity(r.Rate)
	}
	if r.Count > 1 {
		name = fmt.Sprintf("%s x%d", name, r.Count)
	}
	category := strings.TrimSpace(r.Category)
	if category == "" {
		category = InferCategory(r.Name)
	}

	return domain.WeightedOutcome{
		ID:       id,
		Name:     name,
		Weight:   r.Rate,
		Rarity:   rarity,
		Category: category,
	}, true
}
