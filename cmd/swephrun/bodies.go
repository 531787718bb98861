package main

import (
	"sort"
	"strconv"
	"strings"

	swephruntime "github.com/astroveda/sweph-runtime"
)

var bodyNames = map[string]swephruntime.Body{
	"sun":      swephruntime.BodySun,
	"moon":     swephruntime.BodyMoon,
	"mercury":  swephruntime.BodyMercury,
	"venus":    swephruntime.BodyVenus,
	"mars":     swephruntime.BodyMars,
	"jupiter":  swephruntime.BodyJupiter,
	"saturn":   swephruntime.BodySaturn,
	"uranus":   swephruntime.BodyUranus,
	"neptune":  swephruntime.BodyNeptune,
	"pluto":    swephruntime.BodyPluto,
	"meannode": swephruntime.BodyMeanNode,
	"truenode": swephruntime.BodyTrueNode,
	"meanapog": swephruntime.BodyMeanApog,
	"oscuapog": swephruntime.BodyOscuApog,
	"earth":    swephruntime.BodyEarth,
	"chiron":   swephruntime.BodyChiron,
}

// parseBody accepts a case-insensitive body name or a raw body number.
func parseBody(s string) (swephruntime.Body, bool) {
	if b, ok := bodyNames[strings.ToLower(s)]; ok {
		return b, true
	}
	if n, err := strconv.Atoi(s); err == nil {
		return swephruntime.Body(n), true
	}
	return 0, false
}

// sortedBodyNames returns the known body names in stable order.
func sortedBodyNames() []string {
	names := make([]string, 0, len(bodyNames))
	for name := range bodyNames {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return bodyNames[names[i]] < bodyNames[names[j]]
	})
	return names
}
