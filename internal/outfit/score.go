package outfit

import (
	"fmt"
	"math"

	"github.com/kalil1010/ai-stylist/internal/colour"
)

// MaxPairScore is the ceiling of a single colour's sub-score.
const MaxPairScore = 30

// Result is the "awesomeness meter" reading for a plan.
type Result struct {
	Score  int    `json:"score"`
	Label  string `json:"label"`
	Colour string `json:"color"`
}

type hueBand struct {
	lo, hi float64
	score  int
}

// Bands are checked in order. Distances that fall between bands (for example
// 12 < d < 15) score as neutral.
var hueBands = []hueBand{
	{lo: 0, hi: 12, score: 15},
	{lo: 15, hi: 35, score: 20},
	{lo: 165, hi: 195, score: 25},
	{lo: 110, hi: 130, score: 20},
	{lo: 230, hi: 250, score: 20},
	{lo: 80, hi: 100, score: 15},
	{lo: 260, hi: 280, score: 15},
}

const neutralBandScore = 10

// PairScore rates one colour against the base by hue relationship and
// lightness contrast. The result is in [0, MaxPairScore].
func PairScore(base, c colour.HSL) int {
	d := colour.HueDistance(base.H, c.H)
	score := neutralBandScore
	for _, b := range hueBands {
		if d >= b.lo && d <= b.hi {
			score = b.score
			break
		}
	}

	dl := math.Abs(base.L - c.L)
	switch {
	case dl >= 0.25 && dl <= 0.6:
		score += 5
	case dl < 0.1:
		score -= 3
	}
	return max(0, min(MaxPairScore, score))
}

type scoreLabel struct {
	below  int
	label  string
	colour string
}

var scoreLabels = []scoreLabel{
	{below: 40, label: "Needs work", colour: "#EF4444"},
	{below: 70, label: "Good", colour: "#F59E0B"},
	{below: 85, label: "Great", colour: "#10B981"},
	{below: math.MaxInt, label: "Awesome", colour: "#16A34A"},
}

// EmptyResult is the reading for a plan with nothing assigned.
var EmptyResult = Result{Score: 0, Label: "Start choosing", Colour: "#9CA3AF"}

// Label returns the label and display colour for a score.
func Label(score int) (string, string) {
	for _, l := range scoreLabels {
		if score < l.below {
			return l.label, l.colour
		}
	}
	last := scoreLabels[len(scoreLabels)-1]
	return last.label, last.colour
}

// Score rates every assigned colour of plan, top included, against base and
// normalises the sum to 0..100.
func Score(base string, plan Plan) (Result, error) {
	baseRGB, err := colour.ParseHex(base)
	if err != nil {
		return Result{}, fmt.Errorf("base colour: %w", err)
	}

	hexes := plan.Colours()
	if len(hexes) == 0 {
		return EmptyResult, nil
	}

	baseHSL := colour.RGBToHSL(baseRGB)
	sum := 0
	for _, hex := range hexes {
		rgb, err := colour.ParseHex(hex)
		if err != nil {
			return Result{}, err
		}
		sum += PairScore(baseHSL, colour.RGBToHSL(rgb))
	}

	score := int(math.Round(100 * float64(sum) / float64(len(hexes)*MaxPairScore)))
	label, c := Label(score)
	return Result{Score: score, Label: label, Colour: c}, nil
}
