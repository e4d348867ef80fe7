package analysis

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/Mreoch1/tradesync/internal/models"
)

// Fixed thresholds for the qualitative side analysis, on the same [10, 99.9]
// scale as athlete values.
const (
	eliteValueThreshold   = 85.0
	midTierValueThreshold = 70.0
	veryLowValueThreshold = 30.0
	highAverageThreshold  = 65.0
	lowAverageThreshold   = 45.0
	diversePositionCount  = 3
	concentrationFraction = 0.60
)

// Recommendation classification boundaries as fractions of the larger side.
const (
	acceptPctThreshold  = 5.0
	declineDiffFraction = 0.15
)

// Confidence bounds.
const (
	minConfidence = 50.0
	maxConfidence = 95.0
)

// projectedPointsFactor converts an athlete value into the projected-points
// proxy summed per side. The provider exposes no season projection on the
// consumed resources, so both sides use the same derived figure.
const projectedPointsFactor = 2.4

// Engine performs trade analysis over fully-valued athletes. Pure; the logger
// only records the verdicts it hands back.
type Engine struct {
	logger *logrus.Logger
}

func NewEngine(logger *logrus.Logger) *Engine {
	return &Engine{logger: logger}
}

// AnalyzeTrade produces the full analysis for a proposed two-sided trade.
func (e *Engine) AnalyzeTrade(trade models.Trade) models.TradeAnalysis {
	sideA := e.AnalyzeSide(trade.SideA)
	sideB := e.AnalyzeSide(trade.SideB)

	recommendation := DetermineRecommendation(sideA, sideB)
	confidence := CalculateConfidence(sideA, sideB)
	reasoning := GenerateReasoning(sideA, sideB, recommendation)

	e.logger.WithFields(logrus.Fields{
		"side_a_value":   sideA.TotalValue,
		"side_b_value":   sideB.TotalValue,
		"recommendation": recommendation,
		"confidence":     confidence,
	}).Info("Trade analyzed")

	return models.TradeAnalysis{
		SideA:          sideA,
		SideB:          sideB,
		Recommendation: recommendation,
		Confidence:     confidence,
		Reasoning:      reasoning,
	}
}

// AnalyzeSide summarizes one side: aggregate value, positional distribution,
// projected-points proxy, and qualitative strengths and weaknesses.
func (e *Engine) AnalyzeSide(side models.TradeSide) models.SideAnalysis {
	analysis := models.SideAnalysis{
		PositionalValue: make(map[string]float64),
	}

	eliteCount := 0
	midTierCount := 0
	veryLowCount := 0
	for _, a := range side.Athletes {
		analysis.TotalValue += a.Value
		analysis.ProjectedPoints += a.Value * projectedPointsFactor
		if pos := a.PrimaryPosition(); pos != "" {
			analysis.PositionalValue[pos] += a.Value
		}
		switch {
		case a.Value >= eliteValueThreshold:
			eliteCount++
			midTierCount++
		case a.Value >= midTierValueThreshold:
			midTierCount++
		case a.Value < veryLowValueThreshold:
			veryLowCount++
		}
	}
	for _, p := range side.Picks {
		analysis.TotalValue += p.Value
	}

	average := 0.0
	if len(side.Athletes) > 0 {
		athleteTotal := 0.0
		for _, a := range side.Athletes {
			athleteTotal += a.Value
		}
		average = athleteTotal / float64(len(side.Athletes))
	}

	if eliteCount > 0 {
		analysis.Strengths = append(analysis.Strengths,
			fmt.Sprintf("includes %d elite player(s)", eliteCount))
	}
	if midTierCount >= 2 {
		analysis.Strengths = append(analysis.Strengths,
			fmt.Sprintf("solid depth with %d mid-tier or better players", midTierCount))
	}
	if average >= highAverageThreshold {
		analysis.Strengths = append(analysis.Strengths,
			fmt.Sprintf("high average player value (%.1f)", average))
	}
	if len(analysis.PositionalValue) >= diversePositionCount {
		analysis.Strengths = append(analysis.Strengths,
			fmt.Sprintf("covers %d positions", len(analysis.PositionalValue)))
	}

	if veryLowCount > 0 {
		analysis.Weaknesses = append(analysis.Weaknesses,
			fmt.Sprintf("includes %d very low value player(s)", veryLowCount))
	}
	if len(side.Athletes) > 0 && average < lowAverageThreshold {
		analysis.Weaknesses = append(analysis.Weaknesses,
			fmt.Sprintf("low average player value (%.1f)", average))
	}
	if len(side.Athletes) > 0 && eliteCount == 0 {
		analysis.Weaknesses = append(analysis.Weaknesses, "no elite player included")
	}
	if pos, frac := dominantPosition(side.Athletes); len(side.Athletes) > 2 && frac >= concentrationFraction {
		analysis.Weaknesses = append(analysis.Weaknesses,
			fmt.Sprintf("concentrated at %s (%.0f%% of players)", pos, frac*100))
	}

	return analysis
}

// DetermineRecommendation classifies the trade from side A's perspective.
// Within 5% the sides are even enough to accept; beyond 15% of the larger
// side the gap is lopsided enough to decline; anything between warrants a
// counter offer.
func DetermineRecommendation(sideA, sideB models.SideAnalysis) models.Recommendation {
	diff := sideA.TotalValue - sideB.TotalValue
	largest := math.Max(math.Max(sideA.TotalValue, sideB.TotalValue), 1)
	pct := math.Abs(diff) / largest * 100

	if pct <= acceptPctThreshold {
		return models.RecommendAccept
	}
	if diff > declineDiffFraction*largest || diff < -declineDiffFraction*largest {
		return models.RecommendDecline
	}
	return models.RecommendCounter
}

// CalculateConfidence scores how certain the classification is, in
// [minConfidence, maxConfidence]. Larger differentials are easier calls.
func CalculateConfidence(sideA, sideB models.SideAnalysis) float64 {
	largest := math.Max(math.Max(sideA.TotalValue, sideB.TotalValue), 1)
	pct := math.Abs(sideA.TotalValue-sideB.TotalValue) / largest * 100

	var confidence float64
	switch {
	case pct > 15:
		confidence = 85 + math.Min(10, (pct-15)/2)
	case pct > 10:
		confidence = 75 + (pct-10)*2
	case pct > 5:
		confidence = 60 + (pct-5)*3
	default:
		confidence = 50 + pct*2
	}

	if sideA.ProjectedPoints > 0 && sideB.ProjectedPoints > 0 {
		confidence += 5
	}

	return math.Min(math.Max(confidence, minConfidence), maxConfidence)
}

// GenerateReasoning emits the ordered plain-language justification: value
// gap, projected points, positional diversity, strength/weakness comparison,
// then the recommendation itself.
func GenerateReasoning(sideA, sideB models.SideAnalysis, rec models.Recommendation) []string {
	var reasons []string

	diff := sideA.TotalValue - sideB.TotalValue
	switch {
	case math.Abs(diff) < 0.05:
		reasons = append(reasons, fmt.Sprintf(
			"The sides are evenly valued (%.1f vs %.1f).", sideA.TotalValue, sideB.TotalValue))
	case diff > 0:
		reasons = append(reasons, fmt.Sprintf(
			"You are giving up more value (%.1f vs %.1f, a gap of %.1f).",
			sideA.TotalValue, sideB.TotalValue, diff))
	default:
		reasons = append(reasons, fmt.Sprintf(
			"You are receiving more value (%.1f vs %.1f, a gap of %.1f).",
			sideB.TotalValue, sideA.TotalValue, -diff))
	}

	if sideA.ProjectedPoints > 0 && sideB.ProjectedPoints > 0 {
		reasons = append(reasons, fmt.Sprintf(
			"Projected points favor the %s side (%.0f vs %.0f).",
			favoredSide(sideA.ProjectedPoints, sideB.ProjectedPoints),
			sideA.ProjectedPoints, sideB.ProjectedPoints))
	}

	reasons = append(reasons, fmt.Sprintf(
		"Your side covers %d position(s); the other side covers %d.",
		len(sideA.PositionalValue), len(sideB.PositionalValue)))

	reasons = append(reasons, fmt.Sprintf(
		"Your side has %d strength(s) and %d weakness(es); the other side has %d and %d.",
		len(sideA.Strengths), len(sideA.Weaknesses),
		len(sideB.Strengths), len(sideB.Weaknesses)))

	switch rec {
	case models.RecommendAccept:
		reasons = append(reasons, "Recommendation: accept this trade as proposed.")
	case models.RecommendCounter:
		reasons = append(reasons, "Recommendation: counter with an adjusted offer to close the value gap.")
	case models.RecommendDecline:
		reasons = append(reasons, "Recommendation: decline this trade; the value gap is too large.")
	}

	return reasons
}

func favoredSide(a, b float64) string {
	if a >= b {
		return "outgoing"
	}
	return "incoming"
}

func dominantPosition(athletes []models.Athlete) (string, float64) {
	if len(athletes) == 0 {
		return "", 0
	}
	counts := make(map[string]int)
	for _, a := range athletes {
		if pos := a.PrimaryPosition(); pos != "" {
			counts[pos]++
		}
	}
	bestPos, bestCount := "", 0
	for pos, count := range counts {
		if count > bestCount {
			bestPos, bestCount = pos, count
		}
	}
	return bestPos, float64(bestCount) / float64(len(athletes))
}
