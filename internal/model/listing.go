// Package model defines the value objects exchanged by the underwriting
// engine: listings, assumptions, KPI sets, scores, scenarios and portfolio
// summaries. Everything here is a plain serializable record; the packages
// under internal/ compute, this package only carries.
package model

// PropertyType classifies the physical form of a listing.
type PropertyType string

const (
	PropertyTypeDetached     PropertyType = "detached"
	PropertyTypeSemiDetached PropertyType = "semi_detached"
	PropertyTypeTerraced     PropertyType = "terraced"
	PropertyTypeFlat         PropertyType = "flat"
	PropertyTypeBungalow     PropertyType = "bungalow"
	PropertyTypeHMO          PropertyType = "hmo"
	PropertyTypeOther        PropertyType = "other"
)

// EPCBand is an energy-performance certificate band, A (best) to G (worst).
type EPCBand string

const (
	EPCBandA EPCBand = "A"
	EPCBandB EPCBand = "B"
	EPCBandC EPCBand = "C"
	EPCBandD EPCBand = "D"
	EPCBandE EPCBand = "E"
	EPCBandF EPCBand = "F"
	EPCBandG EPCBand = "G"
)

// SubStandard reports whether the band falls below the minimum-efficiency
// threshold used for rental compliance (E and below fail the proposed C
// standard; F/G fail the current one).
func (b EPCBand) SubStandard() bool {
	return b == EPCBandF || b == EPCBandG
}

// Listing holds the immutable facts about a property as acquired at
// ingestion. The engine never mutates a Listing.
type Listing struct {
	ID           string       `json:"id"`
	Price        float64      `json:"price"`
	Currency     string       `json:"currency"`
	Bedrooms     int          `json:"bedrooms"`
	Bathrooms    int          `json:"bathrooms"`
	FloorAreaSqm float64      `json:"floor_area_sqm"`
	PropertyType PropertyType `json:"property_type"`
	Region       string       `json:"region"` // ISO country code, e.g. "GB"
	DaysOnMarket int          `json:"days_on_market"`
	EPC          EPCBand      `json:"epc_band,omitempty"`
}

// Provenance tags where an enrichment value came from.
type Provenance string

const (
	ProvenanceMock     Provenance = "mock"
	ProvenanceVerified Provenance = "verified"
)

// EnrichmentValue is a single third-party-derived metric with its
// confidence score and provenance tag. The scoring engine treats these as
// input data and never recomputes them.
type EnrichmentValue struct {
	Value      float64    `json:"value"`
	Confidence float64    `json:"confidence"` // 0.0-1.0
	Provenance Provenance `json:"provenance"`
}

// EPCEnrichment is an energy band sourced from an enrichment provider.
type EPCEnrichment struct {
	Band       EPCBand    `json:"band"`
	Confidence float64    `json:"confidence"`
	Provenance Provenance `json:"provenance"`
}

// Enrichment bundles the contextual data the scoring engine consumes.
// Any pointer field may be nil; the scorer substitutes neutral defaults
// and lowers its reported confidence.
type Enrichment struct {
	RentEstimate *EnrichmentValue `json:"rent_estimate,omitempty"` // monthly
	DemandIndex  *EnrichmentValue `json:"demand_index,omitempty"`  // 0-100
	FloodRisk    *EnrichmentValue `json:"flood_risk,omitempty"`    // 0-100, higher is worse
	CrimeRisk    *EnrichmentValue `json:"crime_risk,omitempty"`    // 0-100, higher is worse
	ValueIndex   *EnrichmentValue `json:"value_index,omitempty"`   // price vs area average, 100 = at par
	EPC          *EPCEnrichment   `json:"epc,omitempty"`
}
