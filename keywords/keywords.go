// Package keywords holds the static disaster keyword catalog used to build
// search queries, plus the impact-tier catalog used for severity scoring.
// The tables are process-wide constants; nothing here mutates them.
package keywords

const (
	// AllCategories selects the reduced cross-category keyword set.
	AllCategories = "All"
	// General is the fallback category for unrecognized names.
	General = "General"
)

// categoryOrder fixes the enumeration order for the reduced "All" set and
// for the Categories accessor.
var categoryOrder = []string{
	"Cyclone",
	"Earthquake",
	"Flood",
	"Landslide",
	"Heatwave",
	"Drought",
}

var catalog = map[string][]string{
	"Cyclone": {
		"cyclone", "storm", "cyclonic storm", "depression", "deep depression",
		"IMD alert", "NDRF", "Bay of Bengal", "Arabian Sea",
	},
	"Earthquake": {
		"earthquake", "quake", "tremor", "seismic", "aftershock",
		"Richter scale", "epicenter", "NCS alert",
	},
	"Flood": {
		"flood", "flooding", "flash flood", "flood warning", "rising water",
		"monsoon flood", "dam release", "river overflow", "waterlogging",
	},
	"Landslide": {
		"landslide", "mudslide", "landslip", "rockfall", "debris flow",
		"hillside collapse", "mountain hazard",
	},
	"Heatwave": {
		"heatwave", "heat stroke", "extreme temperature", "hot spell",
		"temperature record", "IMD heat alert", "heat emergency",
	},
	"Drought": {
		"drought", "water scarcity", "crop failure", "water shortage",
		"rainfall deficit", "water crisis", "dry spell",
	},
	General: {
		"disaster", "emergency", "evacuation", "rescue", "crisis", "relief",
		"NDMA", "disaster management",
	},
}

// Impact tiers used by downstream severity scoring. Returned as-is.
var impactCatalog = map[string][]string{
	"Severe": {
		"catastrophic", "devastating", "fatal", "death", "killed", "casualties",
		"destroyed", "emergency", "evacuate", "evacuation", "crisis", "danger",
		"severe", "tragedy", "disaster", "critical", "massive damage", "deadly",
		"fatalities",
	},
	"Moderate": {
		"damage", "injured", "wounded", "affected", "impact", "hit", "threat",
		"loss", "moderate", "concern", "worried", "warning", "displacement",
		"disruption", "power outage", "destruction", "property damage",
	},
	"Minor": {
		"minor", "small", "limited", "contained", "controlled", "restored",
		"recovery", "stable", "manageable", "relief", "minimal", "slight",
		"improving", "under control", "returning to normal",
	},
}

// ForCategory returns the search keywords for a disaster category.
//
// An empty category or AllCategories yields the first two keywords of every
// category (General excluded) in fixed order, deliberately capped to keep
// query volume down. A recognized category yields its full list plus the
// first three General terms; duplicates are not removed, callers tolerate
// repeats. Anything else falls back to the General list.
func ForCategory(category string) []string {
	if category == "" || category == AllCategories {
		limited := make([]string, 0, 2*len(categoryOrder))
		for _, name := range categoryOrder {
			limited = append(limited, catalog[name][:2]...)
		}
		return limited
	}

	if category == General {
		return catalog[General]
	}

	if specific, ok := catalog[category]; ok {
		combined := make([]string, 0, len(specific)+3)
		combined = append(combined, specific...)
		combined = append(combined, catalog[General][:3]...)
		return combined
	}

	return catalog[General]
}

// Categories lists the recognized category names in stable order. General
// is the fallback bucket, not a category of its own, so it is not listed.
func Categories() []string {
	return append([]string{}, categoryOrder...)
}

// ImpactKeywords returns the severity tier catalog unmodified.
func ImpactKeywords() map[string][]string {
	return impactCatalog
}
