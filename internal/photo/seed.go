package photo

import (
	"fmt"
	"math/rand"
	"time"
)

var (
	seedDirs = []string{
		"2023/iceland", "2023/weddings/okafor", "2024/street", "2024/studio",
		"2024/weddings/haruki", "2025/alps", "2025/macro",
	}
	seedKeywords = []string{
		"landscape", "portrait", "bw", "golden-hour", "keeper", "client",
		"macro", "night",
	}
)

// Seed populates the service with a generated sample library, for running the
// console without a remote store.
func Seed(svc *Service, n int) {
	rng := rand.New(rand.NewSource(42))
	base := time.Date(2023, 4, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		dir := seedDirs[rng.Intn(len(seedDirs))]
		var kws []string
		for _, kw := range seedKeywords {
			if rng.Intn(4) == 0 {
				kws = append(kws, kw)
			}
		}
		svc.Add(New(Options{
			Path:     fmt.Sprintf("%s/IMG_%04d.raw", dir, i),
			Rating:   rng.Intn(6),
			Keywords: kws,
			Taken:    base.Add(time.Duration(i) * 97 * time.Minute),
			Size:     int64(20_000_000 + rng.Intn(15_000_000)),
		}))
	}
}
