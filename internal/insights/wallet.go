package insights

import (
	"math"
	"time"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/domain"
)

const (
	LevelGreenStarter  = "Green Starter"
	LevelEcoChampion   = "Eco Champion"
	LevelEarthGuardian = "Earth Guardian"

	ecoChampionTokens   = 11
	earthGuardianTokens = 20
	lastMonthWindow     = 30 * 24 * time.Hour
)

// Wallet is the carbon-credit balance derived from every listing of a user.
type Wallet struct {
	TotalCO2Kg      float64 `json:"totalCO2"`
	TotalTokens     int64   `json:"totalTokens"`
	Level           string  `json:"level"`
	Progress        int     `json:"progress"`
	NextLevel       string  `json:"nextLevel"`
	NextLevelTokens int64   `json:"nextLevelTokens"`
	LastMonthCO2Kg  float64 `json:"lastMonthCO2"`
}

// CarbonWallet counts one token per metric ton across all statuses, rounding half up.
func CarbonWallet(listings []*domain.Listing, now time.Time) Wallet {
	var w Wallet
	since := now.Add(-lastMonthWindow)
	for _, l := range listings {
		kg := QuantityKg(l)
		w.TotalCO2Kg += kg
		if l != nil && !l.CreatedAt.Before(since) {
			w.LastMonthCO2Kg += kg
		}
	}

	w.TotalTokens = int64(math.Floor(w.TotalCO2Kg/kgPerTon + 0.5))
	if w.TotalTokens >= ecoChampionTokens {
		w.Level = LevelEcoChampion
		w.NextLevel = LevelEarthGuardian
		w.NextLevelTokens = earthGuardianTokens
	} else {
		w.Level = LevelGreenStarter
		w.NextLevel = LevelEcoChampion
		w.NextLevelTokens = ecoChampionTokens
	}

	progress := math.Round(float64(w.TotalTokens) / earthGuardianTokens * 100)
	w.Progress = int(math.Min(100, progress))
	return w
}
