package valuation

import (
	"github.com/sirupsen/logrus"

	"github.com/Mreoch1/tradesync/internal/models"
	"github.com/Mreoch1/tradesync/internal/providers/yahoo"
)

// Value bounds for every computed athlete value.
const (
	MinValue = 10.0
	MaxValue = 99.9
)

// Skater stat weights, applied to raw season totals.
const (
	weightGoals             = 4.0
	weightAssists           = 3.0
	weightPoints            = 3.4 // only when goals/assists are individually unavailable
	weightPowerPlayPoints   = 1.5
	weightShortHandedPoints = 2.0
	weightGameWinningGoals  = 1.0
	weightPlusMinus         = 0.8
	weightShotsOnGoal       = 0.15
	weightHits              = 0.25
	weightBlocks            = 0.3
	weightFaceoffWins       = 0.1
	weightPenaltyMinutes    = -0.05

	dualPositionBonus  = 2.0
	multiPositionBonus = 3.5
)

// Goaltender stat weights.
const (
	weightWins         = 3.5
	weightShutouts     = 4.0
	weightGamesStarted = 0.3
	weightSaves        = 0.02
	weightGoalsAgainst = -0.1

	savePctBaseline = 85.0
	savePctSlope    = 2.0
	gaaBaseline     = 3.00
	gaaSlope        = 8.0
)

// Blending weights between the statistic-derived value and the calibration
// signal.
const (
	skaterStatBlend    = 0.60
	goalieStatBlend    = 0.65
	ownershipStatBlend = 0.80
)

// statKeys holds the game's resolved stat identifiers. Resolved once from the
// taxonomy so value computation itself stays pure.
type statKeys struct {
	goals, assists, points         string
	powerPlayPoints, shortHanded   string
	gameWinning, plusMinus, shots  string
	hits, blocks, faceoffWins, pim string
	wins, savePct, gaa, shutouts   string
	gamesStarted, saves            string
	goalsAgainst, shotsAgainst     string
}

// Calculator computes athlete values for one game's stat taxonomy. Pure and
// deterministic after construction; safe for concurrent use.
type Calculator struct {
	keys   statKeys
	logger *logrus.Logger
}

// NewCalculator resolves the stat identifiers the formulas need from the
// game's taxonomy. Identifiers that fail to resolve simply contribute nothing,
// the same as an athlete missing that statistic.
func NewCalculator(idx *yahoo.StatIndex, logger *logrus.Logger) *Calculator {
	resolve := func(names ...string) string {
		id, ok := idx.IDByName(names...)
		if !ok {
			logger.WithFields(logrus.Fields{
				"game_key": idx.GameKey(),
				"stat":     names[0],
			}).Warn("Stat name did not resolve in taxonomy")
		}
		return id
	}

	return &Calculator{
		logger: logger,
		keys: statKeys{
			goals:           resolve("Goals"),
			assists:         resolve("Assists"),
			points:          resolve("Points"),
			powerPlayPoints: resolve("Power Play Points", "Powerplay Points"),
			shortHanded:     resolve("Shorthanded Points", "Short-Handed Points"),
			gameWinning:     resolve("Game-Winning Goals", "Game Winning Goals"),
			plusMinus:       resolve("Plus/Minus", "+/-"),
			shots:           resolve("Shots on Goal", "Shots"),
			hits:            resolve("Hits"),
			blocks:          resolve("Blocks", "Blocked Shots"),
			faceoffWins:     resolve("Faceoffs Won", "Faceoff Wins"),
			pim:             resolve("Penalty Minutes"),
			wins:            resolve("Wins"),
			savePct:         resolve("Save Percentage"),
			gaa:             resolve("Goals Against Average"),
			shutouts:        resolve("Shutouts"),
			gamesStarted:    resolve("Games Started"),
			saves:           resolve("Saves"),
			goalsAgainst:    resolve("Goals Against"),
			shotsAgainst:    resolve("Shots Against"),
		},
	}
}

// Value computes the athlete's trade value in [MinValue, MaxValue] from its
// season statistics, role, and calibration signals.
func (c *Calculator) Value(a *models.Athlete) float64 {
	var statValue float64
	if a.Role == models.RoleGoaltender {
		statValue = c.goalieStatValue(a)
	} else {
		statValue = c.skaterStatValue(a)
	}

	blend := skaterStatBlend
	if a.Role == models.RoleGoaltender {
		blend = goalieStatBlend
	}

	switch {
	case a.Rank > 0:
		rankValue := RankValue(a.Rank)
		return clamp(blend*statValue + (1-blend)*rankValue)
	case a.PercentOwned > 0:
		ownershipValue := MinValue + (a.PercentOwned/100.0)*(MaxValue-MinValue)
		return clamp(ownershipStatBlend*statValue + (1-ownershipStatBlend)*ownershipValue)
	default:
		return clamp(statValue)
	}
}

func (c *Calculator) skaterStatValue(a *models.Athlete) float64 {
	var raw float64

	goals, hasGoals := a.Stat(c.keys.goals)
	assists, hasAssists := a.Stat(c.keys.assists)
	if hasGoals || hasAssists {
		raw += goals*weightGoals + assists*weightAssists
	} else if points, ok := a.Stat(c.keys.points); ok {
		// Combined points are a fallback only; the split is worth more signal.
		raw += points * weightPoints
	}

	if v, ok := a.Stat(c.keys.powerPlayPoints); ok {
		raw += v * weightPowerPlayPoints
	}
	if v, ok := a.Stat(c.keys.shortHanded); ok {
		raw += v * weightShortHandedPoints
	}
	if v, ok := a.Stat(c.keys.gameWinning); ok {
		raw += v * weightGameWinningGoals
	}
	if v, ok := a.Stat(c.keys.plusMinus); ok {
		raw += v * weightPlusMinus
	}
	if v, ok := a.Stat(c.keys.shots); ok {
		raw += v * weightShotsOnGoal
	}
	if v, ok := a.Stat(c.keys.hits); ok {
		raw += v * weightHits
	}
	if v, ok := a.Stat(c.keys.blocks); ok {
		raw += v * weightBlocks
	}
	if v, ok := a.Stat(c.keys.faceoffWins); ok && a.HasPosition("C") {
		raw += v * weightFaceoffWins
	}
	if v, ok := a.Stat(c.keys.pim); ok {
		raw += v * weightPenaltyMinutes
	}

	switch {
	case len(a.Positions) >= 3:
		raw += multiPositionBonus
	case len(a.Positions) == 2:
		raw += dualPositionBonus
	}

	return clamp(raw/2.5 + 20)
}

func (c *Calculator) goalieStatValue(a *models.Athlete) float64 {
	var raw float64

	if v, ok := a.Stat(c.keys.wins); ok {
		raw += v * weightWins
	}
	if svp, ok := c.savePercentage(a); ok {
		bonus := (svp - savePctBaseline) * savePctSlope
		if bonus > 0 {
			raw += bonus
		}
	}
	if gaa, ok := a.Stat(c.keys.gaa); ok {
		raw += (gaaBaseline - gaa) * gaaSlope
	}
	if v, ok := a.Stat(c.keys.shutouts); ok {
		raw += v * weightShutouts
	}
	if v, ok := a.Stat(c.keys.gamesStarted); ok {
		raw += v * weightGamesStarted
	}
	if v, ok := a.Stat(c.keys.saves); ok {
		raw += v * weightSaves
	}
	if v, ok := a.Stat(c.keys.goalsAgainst); ok {
		raw += v * weightGoalsAgainst
	}

	return clamp(raw/2.0 + 15)
}

// savePercentage returns the save percentage on a 0-100 scale. Raw save and
// shots-against counts are preferred over the provider's pre-rounded
// percentage field.
func (c *Calculator) savePercentage(a *models.Athlete) (float64, bool) {
	saves, hasSaves := a.Stat(c.keys.saves)
	shotsAgainst, hasShots := a.Stat(c.keys.shotsAgainst)
	if hasSaves && hasShots && shotsAgainst > 0 {
		return saves / shotsAgainst * 100.0, true
	}
	if svp, ok := a.Stat(c.keys.savePct); ok {
		if svp <= 1.0 {
			svp *= 100.0
		}
		return svp, true
	}
	return 0, false
}

func clamp(v float64) float64 {
	if v < MinValue {
		return MinValue
	}
	if v > MaxValue {
		return MaxValue
	}
	return v
}
