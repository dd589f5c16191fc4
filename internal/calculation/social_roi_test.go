package calculation

import (
	"encoding/json"
	"testing"

	"github.com/rgehrsitz/famcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalEqual(t *testing.T, expected int64, actual domain.Money, name string) {
	t.Helper()
	assert.True(t, actual.Equal(decimal.NewFromInt(expected)),
		"%s: expected %d, got %s", name, expected, actual)
}

func TestWeightedValue(t *testing.T) {
	total, b := WeightedValue(2, 0, 0, 4)

	assert.Equal(t, 5.0, total)
	assert.Equal(t, 3.0, b.Educational)
	assert.Equal(t, 2.0, b.General)

	// Attributed hours above the total never produce negative general time.
	total, b = WeightedValue(4, 0, 0, 2)
	assert.Equal(t, 6.0, total)
	assert.Equal(t, 0.0, b.General)
}

func TestSocialROICategory(t *testing.T) {
	assert.Equal(t, domain.CategoryLow, SocialROICategory(2.9))
	assert.Equal(t, domain.CategoryMedium, SocialROICategory(3))
	assert.Equal(t, domain.CategoryHigh, SocialROICategory(6))
	assert.Equal(t, domain.CategoryExcellent, SocialROICategory(10))
}

func TestCalculatePublicSavings(t *testing.T) {
	full := CalculatePublicSavings(10, 1)
	decimalEqual(t, 4120, full.MentalHealth, "mental health")
	decimalEqual(t, 3750, full.SubstanceAbuse, "substance abuse")
	decimalEqual(t, 15000, full.Education, "education")
	decimalEqual(t, 22870, full.Total, "total")

	// The protective factor saturates at ten hours.
	decimalEqual(t, 22870, CalculatePublicSavings(40, 1).Total, "saturated total")

	half := CalculatePublicSavings(5, 2)
	decimalEqual(t, 4120, half.MentalHealth, "half mental health")
}

func TestCalculateSocialROI_GeneralHours(t *testing.T) {
	result, err := CalculateSocialROI(domain.SocialROIInput{
		ProgramInvestment: 10,
		FamiliesReached:   1,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.CategoryExcellent, result.Category)
	assert.Equal(t, 47, result.Score)
	assert.Equal(t, 1.0, result.WeightedMultiplier)
	decimalEqual(t, 52000, result.TotalROI, "annual")
	decimalEqual(t, 520000, result.LifetimeROI, "lifetime")
	decimalEqual(t, 100, result.PerFamilyBenefit, "per hour")
	decimalEqual(t, 52000000, result.SocietalImpact, "societal")
	decimalEqual(t, 15600000, result.CommunityImpact.PublicHealth, "public health")
	decimalEqual(t, 7800000, result.CommunityImpact.JusticeSavings, "justice")
	decimalEqual(t, 13000000, result.CommunityImpact.EducationGains, "education gains")

	assert.Equal(t, "Seu investimento anual em tempo parental vale aproximadamente R$52.000", result.Insights[0])
	assert.Equal(t, "Até seus filhos completarem 18 anos: R$520.000 em valor acumulado", result.Insights[2])
	assert.Equal(t, "Cada hora de qualidade gera aproximadamente R$100 em valor social evitando custos futuros",
		result.Recommendations[len(result.Recommendations)-1])
}

func TestCalculateSocialROI_EducationalBonus(t *testing.T) {
	result, err := CalculateSocialROI(domain.SocialROIInput{
		ProgramInvestment: 4,
		FamiliesReached:   1,
		AvgIncomeIncrease: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, 1.25, result.WeightedMultiplier)
	assert.Equal(t, 44, result.Score)
	assert.Equal(t, domain.CategoryMedium, result.Category)
	decimalEqual(t, 26000, result.TotalROI, "annual")
	decimalEqual(t, 125, result.PerFamilyBenefit, "per hour")
}

func TestCalculateSocialROI_ChildAge(t *testing.T) {
	age := 17.0
	result, err := CalculateSocialROI(domain.SocialROIInput{
		ProgramInvestment: 10,
		FamiliesReached:   1,
		AverageChildAge:   &age,
	})
	require.NoError(t, err)
	decimalEqual(t, 52000, result.LifetimeROI, "one year left")

	zero, err := CalculateSocialROI(domain.SocialROIInput{FamiliesReached: 1})
	require.NoError(t, err)
	assert.True(t, zero.TotalROI.IsZero())
	for _, insight := range zero.Insights {
		assert.NotContains(t, insight, "completarem 18 anos")
	}
}

func TestCalculateSocialROI_Validation(t *testing.T) {
	age := 18.0
	_, err := CalculateSocialROI(domain.SocialROIInput{
		ProgramInvestment: -1,
		FamiliesReached:   0,
		AverageChildAge:   &age,
	})
	require.Error(t, err)

	verrs, ok := err.(domain.ValidationErrors)
	require.True(t, ok)
	assert.Equal(t, []string{"programInvestment", "familiesReached", "averageChildAge"}, verrs.Fields())
}

func TestSocialROIResult_JSONRoundTrip(t *testing.T) {
	result, err := CalculateSocialROI(domain.SocialROIInput{ProgramInvestment: 10, FamiliesReached: 2})
	require.NoError(t, err)

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded domain.SocialROIResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, result.TotalROI.Equal(decoded.TotalROI.Decimal))
	assert.True(t, result.PublicSavings.Total.Equal(decoded.PublicSavings.Total.Decimal))
	assert.Equal(t, result.Score, decoded.Score)
}
