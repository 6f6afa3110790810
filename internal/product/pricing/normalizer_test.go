package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitrine/catalog-service/internal/model"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func strPtr(s string) *string {
	return &s
}

func TestFormatCents(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{1999, "19.99"},
		{0, "0.00"},
		{1, "0.01"},
		{100, "1.00"},
		{249900, "2499.00"},
		{105, "1.05"},
		{-1999, "-19.99"},
		{9999999999, "99999999.99"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatCents(tc.cents), "cents=%d", tc.cents)
	}
}

func TestNormalize(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		result := Normalize(nil)
		assert.Empty(t, result.Modalities)
		assert.Equal(t, "", result.MainCardPriceType)
	})

	t.Run("single modality without promo", func(t *testing.T) {
		result := Normalize([]model.PricingModality{
			{
				ModalityType:     "standard",
				PriceCents:       1999,
				DeliveryEstimate: strPtr("3-5 dias úteis"),
				IsMainCardPrice:  true,
			},
		})

		require.Contains(t, result.Modalities, "standard")
		m := result.Modalities["standard"]
		assert.Equal(t, "19.99", m.Price)
		assert.Equal(t, "3-5 dias úteis", m.Delivery)
		assert.False(t, m.Promo.Active)
		assert.Equal(t, "normal", m.Promo.Type)
		assert.Equal(t, "", m.Promo.Price)
		assert.Equal(t, "", m.Promo.EndDate)
		assert.Equal(t, "standard", result.MainCardPriceType)
	})

	t.Run("last main-card row wins", func(t *testing.T) {
		result := Normalize([]model.PricingModality{
			{ModalityType: "A", PriceCents: 100, IsMainCardPrice: true},
			{ModalityType: "B", PriceCents: 200, IsMainCardPrice: true},
		})
		assert.Equal(t, "B", result.MainCardPriceType)
	})

	t.Run("no main-card row yields empty type", func(t *testing.T) {
		result := Normalize([]model.PricingModality{
			{ModalityType: "A", PriceCents: 100},
			{ModalityType: "B", PriceCents: 200},
		})
		assert.Equal(t, "", result.MainCardPriceType)
	})

	t.Run("main-card flag keeps earlier row when later rows are unflagged", func(t *testing.T) {
		result := Normalize([]model.PricingModality{
			{ModalityType: "A", PriceCents: 100, IsMainCardPrice: true},
			{ModalityType: "B", PriceCents: 200},
		})
		assert.Equal(t, "A", result.MainCardPriceType)
	})

	t.Run("promo price of zero formats as 0.00", func(t *testing.T) {
		result := Normalize([]model.PricingModality{
			{
				ModalityType:    "express",
				PriceCents:      5000,
				PromoPriceCents: int64Ptr(0),
				PromoActive:     true,
				PromoType:       "flash",
			},
		})

		m := result.Modalities["express"]
		assert.Equal(t, "0.00", m.Promo.Price)
		assert.True(t, m.Promo.Active)
		assert.Equal(t, "flash", m.Promo.Type)
	})

	t.Run("absent promo price stays empty even with promo active", func(t *testing.T) {
		result := Normalize([]model.PricingModality{
			{ModalityType: "standard", PriceCents: 5000, PromoActive: true},
		})
		assert.Equal(t, "", result.Modalities["standard"].Promo.Price)
	})

	t.Run("absent delivery estimate renders as empty string", func(t *testing.T) {
		result := Normalize([]model.PricingModality{
			{ModalityType: "standard", PriceCents: 5000},
		})
		assert.Equal(t, "", result.Modalities["standard"].Delivery)
	})

	t.Run("duplicate modality types keep the last row's record", func(t *testing.T) {
		result := Normalize([]model.PricingModality{
			{ModalityType: "standard", PriceCents: 1000},
			{ModalityType: "standard", PriceCents: 2000},
		})
		assert.Len(t, result.Modalities, 1)
		assert.Equal(t, "20.00", result.Modalities["standard"].Price)
	})

	t.Run("input is not mutated", func(t *testing.T) {
		rows := []model.PricingModality{
			{ModalityType: "standard", PriceCents: 1999, IsMainCardPrice: true},
		}
		_ = Normalize(rows)
		assert.Equal(t, int64(1999), rows[0].PriceCents)
		assert.True(t, rows[0].IsMainCardPrice)
	})
}
