package invalidation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vitrine/catalog-service/internal/events"
)

func TestPatternsFor(t *testing.T) {
	t.Run("category changes stale everything derived from categories", func(t *testing.T) {
		assert.Equal(t,
			[]string{"catalog:categories", "catalog:products:*", "catalog:product:*"},
			patternsFor(events.EntityCategory))
	})

	t.Run("product changes leave the category listing alone", func(t *testing.T) {
		assert.Equal(t,
			[]string{"catalog:products:*", "catalog:product:*"},
			patternsFor(events.EntityProduct))
	})

	t.Run("variant and image changes only stale product pages", func(t *testing.T) {
		assert.Equal(t, []string{"catalog:product:*"}, patternsFor(events.EntityVariant))
		assert.Equal(t, []string{"catalog:product:*"}, patternsFor(events.EntityImage))
	})

	t.Run("unknown entities purge nothing", func(t *testing.T) {
		assert.Nil(t, patternsFor("order"))
	})
}
