package stats

// TrendLevels is the palette used by Sparkline, lowest to highest.
const TrendLevels = "▁▂▃▄▅▆▇█"

var trendRunes = []rune(TrendLevels)

// Sparkline quantizes series into len(TrendLevels) buckets scaled between
// the minimum and maximum of the series. A flat series renders at the
// lowest level.
func Sparkline(series []int) string {
	if len(series) == 0 {
		return ""
	}
	lo, hi := series[0], series[0]
	for _, v := range series[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	top := len(trendRunes) - 1
	out := make([]rune, len(series))
	for i, v := range series {
		out[i] = trendRunes[(v-lo)*top/span]
	}
	return string(out)
}
