package regional

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yieldpilot/underwrite-cli/internal/model"
)

func TestForKnownRegions(t *testing.T) {
	gb := For("GB")
	assert.Equal(t, 5.0, gb.VoidsPct)
	assert.Equal(t, 25.0, gb.DepositPct)
	assert.Equal(t, 5.5, gb.MortgageRatePct)

	us := For("US")
	assert.Equal(t, 30, us.TermYears)
	assert.Equal(t, 1200.0, us.InsurancePerYear)
}

func TestForUnknownRegionFallsBack(t *testing.T) {
	assert.Equal(t, fallbackDefaults, For("FR"))
	assert.Equal(t, fallbackDefaults, For(""))
}

func TestRegionsListsTabledCodes(t *testing.T) {
	regions := Regions()
	assert.Len(t, regions, 5)
	assert.Contains(t, regions, "GB")
	assert.Contains(t, regions, "DE")
}

func TestMergeFillsOnlyZeroFields(t *testing.T) {
	a := model.Assumptions{
		DepositPct:      40,
		InterestRatePct: 0,
		TermYears:       0,
		VoidsPct:        2,
	}
	merged := Merge(a, "GB")

	assert.Equal(t, 40.0, merged.DepositPct)
	assert.Equal(t, 2.0, merged.VoidsPct)
	assert.Equal(t, 5.5, merged.InterestRatePct)
	assert.Equal(t, 25, merged.TermYears)
	assert.Equal(t, 8.0, merged.MaintenancePct)
	assert.Equal(t, 10.0, merged.ManagementPct)
	assert.Equal(t, 300.0, merged.InsurancePerYear)
}

func TestMergeNeverDefaultsInterestOnly(t *testing.T) {
	merged := Merge(model.Assumptions{}, "GB")
	assert.False(t, merged.InterestOnly)

	merged = Merge(model.Assumptions{InterestOnly: true}, "GB")
	assert.True(t, merged.InterestOnly)
}
