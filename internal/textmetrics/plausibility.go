package textmetrics

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/annigue/Artikel-LLM/internal/article"
)

// TimeWindow is a minute range stated in the required details, e.g.
// "12–14 Min". A single value yields Lo == Hi.
type TimeWindow struct {
	Lo, Hi int
}

// PlausibilityMetrics reports the camp-cooking consistency checks.
type PlausibilityMetrics struct {
	EquipmentOK bool // stove or pan vocabulary present
	OvenOK      bool // no oven mention unless the details asked for one
	DishesOK    bool // bounded secondary vessels under "wenig Abwasch"
	TimingOK    bool // stated cooking times hit the details' time window
	PortionsOK  bool // extracted portion count within bounds (or absent)

	TargetWindow *TimeWindow
	FoundMinutes []int
	Portions     int // 0 when no portion count was found

	OK bool
}

var (
	minuteRangeRE  = regexp.MustCompile(`(?i)(\d+)\s*(?:–|-|bis)\s*(\d+)\s*(?:min|minute|minuten)\b`)
	minuteSingleRE = regexp.MustCompile(`(?i)(\d+)\s*(?:min|minute|minuten)\b`)
	portionRE      = regexp.MustCompile(`(?i)(?:portion|portionen)\s*[:\-]?\s*(\d+)`)
)

// TimeTarget extracts a minute window from the required-details string.
// Returns nil when the details state no time constraint.
func TimeTarget(details string) *TimeWindow {
	if m := minuteRangeRE.FindStringSubmatch(details); m != nil {
		lo, _ := strconv.Atoi(m[1])
		hi, _ := strconv.Atoi(m[2])
		if lo > hi {
			lo, hi = hi, lo
		}
		return &TimeWindow{Lo: lo, Hi: hi}
	}
	if m := minuteSingleRE.FindStringSubmatch(details); m != nil {
		v, _ := strconv.Atoi(m[1])
		return &TimeWindow{Lo: v, Hi: v}
	}
	return nil
}

// MinutesIn returns every minute value mentioned in the text, range endpoints
// included.
func MinutesIn(text string) []int {
	var vals []int
	for _, m := range minuteRangeRE.FindAllStringSubmatch(text, -1) {
		lo, _ := strconv.Atoi(m[1])
		hi, _ := strconv.Atoi(m[2])
		vals = append(vals, lo, hi)
	}
	for _, m := range minuteSingleRE.FindAllStringSubmatch(text, -1) {
		v, _ := strconv.Atoi(m[1])
		vals = append(vals, v)
	}
	return vals
}

// Portions extracts the portion count from the "Zeiten & Portionen" section,
// 0 when absent.
func Portions(d *article.Document) int {
	recipe := d.Section(article.SectionRecipe)
	block := h3Block(recipe, article.SectionTimes)
	if block == "" {
		return 0
	}
	if m := portionRE.FindStringSubmatch(block); m != nil {
		v, _ := strconv.Atoi(m[1])
		return v
	}
	return 0
}

// Plausibility runs the camp-cooking consistency checks against the document
// and the caller's required details. toleranceMin widens the time window on
// both sides.
func Plausibility(d *article.Document, v Vocabulary, details string, toleranceMin, portionMin, portionMax int) PlausibilityMetrics {
	lower := strings.ToLower(d.Raw())
	detailsLower := strings.ToLower(details)

	m := PlausibilityMetrics{
		EquipmentOK: countWordHits(lower, v.Stove)+countWordHits(lower, v.Pan) >= 1,
		OvenOK:      true,
		DishesOK:    true,
		TimingOK:    true,
		PortionsOK:  true,
	}

	if !strings.Contains(detailsLower, "backofen") && !strings.Contains(detailsLower, "ofen") {
		m.OvenOK = countWordHits(lower, v.Oven) == 0
	}

	if strings.Contains(detailsLower, "wenig abwasch") {
		bowls := countWordHits(lower, v.Dishes)
		pots := countWordHits(lower, v.Pots)
		// One extra bowl and one pot are tolerated; the pan is always fine.
		m.DishesOK = bowls <= 1 && pots <= 1
	}

	m.TargetWindow = TimeTarget(details)
	m.FoundMinutes = MinutesIn(d.Raw())
	if m.TargetWindow != nil {
		m.TimingOK = false
		for _, min := range m.FoundMinutes {
			if min >= m.TargetWindow.Lo-toleranceMin && min <= m.TargetWindow.Hi+toleranceMin {
				m.TimingOK = true
				break
			}
		}
	}

	m.Portions = Portions(d)
	if m.Portions != 0 {
		m.PortionsOK = m.Portions >= portionMin && m.Portions <= portionMax
	}

	m.OK = m.EquipmentOK && m.OvenOK && m.DishesOK && m.TimingOK && m.PortionsOK
	return m
}
