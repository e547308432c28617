package domain

type (
	// A CatalogEvent announces an upserted or deleted product.
	// Deleted events carry only the slug.
	CatalogEvent struct {
		Product Product
		Deleted bool
	}

	// A CartEvent is recorded for every cart add.
	CartEvent struct {
		Slug string
		Qty  int
	}
)
