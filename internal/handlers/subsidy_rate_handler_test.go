// childcare-crm/internal/handlers/subsidy_rate_handler_test.go
package handlers

import (
	"net/http"
	"testing"

	"childcare-crm/models"

	"github.com/stretchr/testify/require"
)

func TestDeriveGovernmentRate(t *testing.T) {
	// Exact decimal results; naive float subtraction would give
	// 88.19000000000001 for the infant rate.
	require.Equal(t, 88.19, DeriveGovernmentRate(110.19, 22))
	require.Equal(t, 70.31, DeriveGovernmentRate(92.31, 22))
	require.Equal(t, 52.36, DeriveGovernmentRate(74.36, 22))
}

func TestSubsidyRateApplyDerivesGovernmentRate(t *testing.T) {
	in := SubsidyRateInput{
		ProgramType:      models.ProgramInfant,
		DailyTuitionRate: 110.19,
		DailyParentRate:  22,
	}

	var rate models.SubsidyRate
	status, err := in.apply(&rate)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 88.19, rate.DailyGovernmentRate)
}

func TestSubsidyRateApplyKeepsExplicitGovernmentRate(t *testing.T) {
	explicit := 80.0
	in := SubsidyRateInput{
		ProgramType:         models.ProgramToddler,
		DailyTuitionRate:    92.31,
		DailyParentRate:     22,
		DailyGovernmentRate: &explicit,
	}

	var rate models.SubsidyRate
	_, err := in.apply(&rate)
	require.NoError(t, err)
	require.Equal(t, 80.0, rate.DailyGovernmentRate)
}

func TestSubsidyRateApplyRejectsParentRateAboveTuition(t *testing.T) {
	in := SubsidyRateInput{
		ProgramType:      models.ProgramPreschool,
		DailyTuitionRate: 20,
		DailyParentRate:  22,
	}

	var rate models.SubsidyRate
	status, err := in.apply(&rate)
	require.Error(t, err)
	require.Equal(t, http.StatusBadRequest, status)
}

func TestSubsidyRateApplyRejectsUnknownProgramType(t *testing.T) {
	in := SubsidyRateInput{
		ProgramType:      "Kindergarten",
		DailyTuitionRate: 50,
		DailyParentRate:  22,
	}

	var rate models.SubsidyRate
	status, err := in.apply(&rate)
	require.Error(t, err)
	require.Equal(t, http.StatusBadRequest, status)
}
