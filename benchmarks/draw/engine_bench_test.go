package draw_bench

import (
	"context"
	"fmt"
	"testing"

	"github.com/neo84716/ro-data/internal/domain"
	"github.com/neo84716/ro-data/internal/draw"
	"github.com/neo84716/ro-data/internal/enchant"
	"github.com/neo84716/ro-data/internal/gacha"
	"github.com/neo84716/ro-data/internal/utils"
)

// --- Fixtures ---

func uniformSet(n int) domain.WeightedSet {
	set := domain.WeightedSet{ID: fmt.Sprintf("uniform-%d", n)}
	for i := 0; i < n; i++ {
		set.Outcomes = append(set.Outcomes, domain.WeightedOutcome{
			ID:     fmt.Sprintf("o%d", i),
			Weight: 100 / float64(n),
		})
	}
	return set
}

func newEngine() *draw.Engine {
	return draw.NewEngine(
		draw.WithMode(draw.ModeFixedPercent),
		draw.WithSource(utils.NewSeededFloat(1)),
	)
}

// --- Benchmark Functions ---

// BenchmarkDraw measures a single weighted pick as the table grows.
func BenchmarkDraw(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("outcomes=%d", n), func(b *testing.B) {
			e := newEngine()
			set := uniformSet(n)

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := e.Draw(set); err != nil {
					b.Fatalf("Draw failed: %v", err)
				}
			}
		})
	}
}

// BenchmarkDrawBatch measures a ten-pull with tallying.
func BenchmarkDrawBatch(b *testing.B) {
	e := newEngine()
	set := uniformSet(20)
	tally := draw.NewTally(49)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.DrawBatch(set, 10, tally); err != nil {
			b.Fatalf("DrawBatch failed: %v", err)
		}
	}
}

// BenchmarkComboSeek measures a rare three-slot combination (1 in 1120), so
// most iterations run most of the attempt budget.
func BenchmarkComboSeek(b *testing.B) {
	e := newEngine()
	sets := []domain.WeightedSet{uniformSet(14), uniformSet(10), uniformSet(8)}
	targets := []string{"o0", "o0", "o0"}
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s, err := e.NewSeeker(sets, targets, 1000, nil)
		if err != nil {
			b.Fatalf("NewSeeker failed: %v", err)
		}
		draw.Run(ctx, s, draw.DefaultChunkSize)
	}
}

// BenchmarkGachaPull measures a ten-pull through the service, including the
// session lock and log formatting.
func BenchmarkGachaPull(b *testing.B) {
	ctx := context.Background()
	pools, err := gacha.LoadPools("../../configs/gacha_pools.yaml")
	if err != nil {
		b.Fatalf("LoadPools failed: %v", err)
	}
	svc, err := gacha.NewService(ctx, newEngine(), pools, gacha.Config{})
	if err != nil {
		b.Fatalf("NewService failed: %v", err)
	}
	v, err := svc.CreateSession(ctx, pools[0].ID)
	if err != nil {
		b.Fatalf("CreateSession failed: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.Pull(ctx, v.ID, 10); err != nil {
			b.Fatalf("Pull failed: %v", err)
		}
	}
}

// BenchmarkEnchantAll measures one trial across every slot of the shipped profile.
func BenchmarkEnchantAll(b *testing.B) {
	ctx := context.Background()
	profiles, err := enchant.LoadProfiles("../../configs/enchant_profiles.yaml")
	if err != nil {
		b.Fatalf("LoadProfiles failed: %v", err)
	}
	svc, err := enchant.NewService(ctx, newEngine(), profiles, enchant.Config{})
	if err != nil {
		b.Fatalf("NewService failed: %v", err)
	}
	v, err := svc.CreateSession(ctx, profiles[0].ID, "")
	if err != nil {
		b.Fatalf("CreateSession failed: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.EnchantAll(ctx, v.ID); err != nil {
			b.Fatalf("EnchantAll failed: %v", err)
		}
	}
}
