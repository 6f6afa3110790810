// Package pricing turns a product's stored modality rows into the
// display structure the storefront renders.
package pricing

import (
	"fmt"

	"github.com/vitrine/catalog-service/internal/model"
)

// PromoDisplay is the promotion sub-record of one modality. Price is ""
// when the stored promo price is unset; a stored zero is a real price
// and formats as "0.00".
type PromoDisplay struct {
	Active  bool   `json:"active"`
	Type    string `json:"type"`
	Price   string `json:"price"`
	EndDate string `json:"end_date"`
}

type ModalityDisplay struct {
	Price    string       `json:"price"`
	Delivery string       `json:"delivery"`
	Promo    PromoDisplay `json:"promo"`
}

type Normalized struct {
	Modalities        map[string]ModalityDisplay `json:"modalities"`
	MainCardPriceType string                     `json:"main_card_price_type"`
}

// Normalize is a pure function of the row list's order and contents.
// When several rows carry the main-card flag the last one wins; ""
// when none does.
func Normalize(rows []model.PricingModality) Normalized {
	result := Normalized{
		Modalities: make(map[string]ModalityDisplay, len(rows)),
	}

	for _, row := range rows {
		promoType := row.PromoType
		if promoType == "" {
			promoType = "normal"
		}

		promoPrice := ""
		if row.PromoPriceCents != nil {
			promoPrice = FormatCents(*row.PromoPriceCents)
		}

		delivery := ""
		if row.DeliveryEstimate != nil {
			delivery = *row.DeliveryEstimate
		}

		result.Modalities[row.ModalityType] = ModalityDisplay{
			Price:    FormatCents(row.PriceCents),
			Delivery: delivery,
			Promo: PromoDisplay{
				Active: row.PromoActive,
				Type:   promoType,
				Price:  promoPrice,
			},
		}

		if row.IsMainCardPrice {
			result.MainCardPriceType = row.ModalityType
		}
	}

	return result
}

// FormatCents renders a minor-unit amount with exactly two decimal
// digits. Integer arithmetic only; floats would drift on large amounts.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
