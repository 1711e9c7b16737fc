package pricing

import (
	"math"
	"strings"

	"backend/internal/utils"
)

const (
	earthRadiusKm = 6371.0
	// Straight-line to road distance correction for hill routes.
	roadFactor = 1.3

	minDistanceKm = 3
	maxDistanceKm = 120
)

type latLng struct {
	lat, lng float64
}

// knownPoints covers the service areas the app operates in. Lookups are by
// normalized place name; anything else goes through the lexical fallback.
var knownPoints = map[string]latLng{
	"manali":      {32.2396, 77.1887},
	"kullu":       {31.9579, 77.1095},
	"kasol":       {32.0100, 77.3150},
	"shimla":      {31.1048, 77.1734},
	"dharamshala": {32.2190, 76.3234},
	"chandigarh":  {30.7333, 76.7794},
	"rishikesh":   {30.0869, 78.2676},
	"delhi":       {28.6139, 77.2090},
	"jaipur":      {26.9124, 75.7873},
	"leh":         {34.1526, 77.5771},
}

// EstimateDistanceKm approximates road kilometres between two place names.
// It is a deterministic heuristic, not a geocoding call: identical inputs
// always produce identical output, which fare quotes rely on.
func EstimateDistanceKm(from, to string) int {
	a := utils.NormalizePlace(from)
	b := utils.NormalizePlace(to)

	pa, okA := knownPoints[a]
	pb, okB := knownPoints[b]
	if okA && okB {
		km := int(math.Floor(haversineKm(pa, pb)*roadFactor + 0.5))
		if km < minDistanceKm {
			return minDistanceKm
		}
		return km
	}

	sim := tokenSetSimilarity(a, b)
	lenDiff := math.Abs(float64(len(a)) - float64(len(b)))
	km := int(math.Floor(6 + (1-sim)*22 + lenDiff*0.2 + 0.5))
	if km < minDistanceKm {
		return minDistanceKm
	}
	if km > maxDistanceKm {
		return maxDistanceKm
	}
	return km
}

func haversineKm(a, b latLng) float64 {
	dLat := degToRad(b.lat - a.lat)
	dLng := degToRad(b.lng - a.lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degToRad(a.lat))*math.Cos(degToRad(b.lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// tokenSetSimilarity is the Jaccard overlap of the words in both names.
func tokenSetSimilarity(a, b string) float64 {
	ta := strings.Fields(a)
	tb := strings.Fields(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	set := map[string]bool{}
	for _, t := range ta {
		set[t] = true
	}
	union := map[string]bool{}
	for _, t := range ta {
		union[t] = true
	}
	inter := 0
	for _, t := range tb {
		if set[t] {
			inter++
			delete(set, t) // count shared tokens once
		}
		union[t] = true
	}
	return float64(inter) / float64(len(union))
}
