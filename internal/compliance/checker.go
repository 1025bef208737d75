// Package compliance evaluates a listing against rental regulations. Each
// check is an independent rule; the report's worst status wins and its
// critical/high counts feed the deal-score risk narrative.
package compliance

import (
	"fmt"

	"github.com/yieldpilot/underwrite-cli/internal/model"
)

// hmoLicenceBedrooms is the occupancy size at which mandatory HMO
// licensing applies.
const hmoLicenceBedrooms = 5

// rule evaluates one regulatory concern. Rules never see each other's
// output.
type rule func(model.Listing, model.Enrichment) *model.ComplianceCheck

var rules = []rule{
	checkEPCMinimum,
	checkHMOLicence,
	checkFloodInsurability,
}

// Check runs every rule against the listing and aggregates the report.
func Check(listing model.Listing, enrichment model.Enrichment) *model.ComplianceReport {
	report := &model.ComplianceReport{Overall: model.CheckPass}

	for _, r := range rules {
		c := r(listing, enrichment)
		if c == nil {
			continue
		}
		report.Checks = append(report.Checks, *c)

		switch c.Status {
		case model.CheckFail:
			report.Overall = model.CheckFail
		case model.CheckWarn:
			if report.Overall != model.CheckFail {
				report.Overall = model.CheckWarn
			}
		}
		if c.Status != model.CheckPass {
			switch c.Severity {
			case model.SeverityCritical:
				report.CriticalCount++
			case model.SeverityHigh:
				report.HighCount++
			}
		}
	}

	return report
}

// checkEPCMinimum enforces the minimum energy-efficiency standard for
// rentals: F/G fail outright, E warns against the incoming C floor.
// The enrichment band wins over the listing's when both are present.
func checkEPCMinimum(l model.Listing, e model.Enrichment) *model.ComplianceCheck {
	band := l.EPC
	if e.EPC != nil {
		band = e.EPC.Band
	}
	if band == "" {
		return &model.ComplianceCheck{
			Type:     "epc_minimum",
			Status:   model.CheckWarn,
			Severity: model.SeverityMedium,
			Message:  "no EPC band on record; a valid certificate is required to let",
		}
	}
	if band.SubStandard() {
		return &model.ComplianceCheck{
			Type:           "epc_minimum",
			Status:         model.CheckFail,
			Severity:       model.SeverityCritical,
			Message:        fmt.Sprintf("EPC band %s is below the minimum standard for new tenancies", band),
			RequiredAction: "complete energy improvements or register a valid exemption",
			Metadata:       map[string]string{"band": string(band)},
		}
	}
	if band == model.EPCBandE || band == model.EPCBandD {
		return &model.ComplianceCheck{
			Type:     "epc_minimum",
			Status:   model.CheckWarn,
			Severity: model.SeverityMedium,
			Message:  fmt.Sprintf("EPC band %s meets today's standard but not the proposed band-C floor", band),
			Metadata: map[string]string{"band": string(band)},
		}
	}
	return &model.ComplianceCheck{
		Type:     "epc_minimum",
		Status:   model.CheckPass,
		Severity: model.SeverityLow,
		Message:  fmt.Sprintf("EPC band %s meets the letting standard", band),
	}
}

// checkHMOLicence flags multi-occupancy licensing. Five or more bedrooms
// (or an explicit HMO listing) needs a mandatory licence.
func checkHMOLicence(l model.Listing, _ model.Enrichment) *model.ComplianceCheck {
	isHMO := l.PropertyType == model.PropertyTypeHMO || l.Bedrooms >= hmoLicenceBedrooms
	if !isHMO {
		return &model.ComplianceCheck{
			Type:     "hmo_licence",
			Status:   model.CheckPass,
			Severity: model.SeverityLow,
			Message:  "below mandatory HMO licensing threshold",
		}
	}
	return &model.ComplianceCheck{
		Type:           "hmo_licence",
		Status:         model.CheckWarn,
		Severity:       model.SeverityHigh,
		Message:        fmt.Sprintf("%d bedrooms: mandatory HMO licence likely required", l.Bedrooms),
		RequiredAction: "confirm licensing requirements with the local authority before completion",
	}
}

// checkFloodInsurability warns when the flood index suggests insurance
// will be costly or refused.
func checkFloodInsurability(_ model.Listing, e model.Enrichment) *model.ComplianceCheck {
	if e.FloodRisk == nil {
		return nil // no data, no check
	}
	v := e.FloodRisk.Value
	switch {
	case v >= 85:
		return &model.ComplianceCheck{
			Type:           "flood_insurability",
			Status:         model.CheckFail,
			Severity:       model.SeverityHigh,
			Message:        "flood risk high enough that standard insurance may be refused",
			RequiredAction: "obtain an insurance quote before exchange",
		}
	case v >= 60:
		return &model.ComplianceCheck{
			Type:     "flood_insurability",
			Status:   model.CheckWarn,
			Severity: model.SeverityMedium,
			Message:  "elevated flood risk will raise insurance premiums",
		}
	default:
		return &model.ComplianceCheck{
			Type:     "flood_insurability",
			Status:   model.CheckPass,
			Severity: model.SeverityLow,
			Message:  "flood risk within normal insurable range",
		}
	}
}
