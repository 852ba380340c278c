package aggregate

import (
	"github.com/alexanderramin/tripboard/internal/classify"
)

// MaxRouteStops caps the number of stops shown for a day.
const MaxRouteStops = 6

// ExtractRoute lists the areas a day passes through, in item order. The
// explicit area field is used when set, otherwise title and note are
// scanned for known place names. Consecutive repeats collapse into one stop.
func ExtractRoute(day *classify.Day) []string {
	stops := make([]string, 0, MaxRouteStops)
	for _, it := range day.Items {
		label := routeLabel(&it)
		if label == "" {
			continue
		}
		if n := len(stops); n > 0 && stops[n-1] == label {
			continue
		}
		stops = append(stops, label)
		if len(stops) == MaxRouteStops {
			break
		}
	}
	return stops
}

func routeLabel(it *classify.Item) string {
	if it.Source.Area != "" {
		return NormalizeArea(it.Source.Area)
	}
	return ScanArea(it.Source.Text())
}
