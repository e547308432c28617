package schema

const CatalogEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "catalog_event",
	"fields": [
		{"name": "slug", "type": "string"},
		{"name": "deleted", "type": "boolean"},
		{"name": "title", "type": "string"},
		{"name": "brand", "type": "string"},
		{"name": "description", "type": "string"},
		{"name": "price", "type": "double"},
		{"name": "compare_at_price", "type": ["null", "double"], "default": null},
		{"name": "category", "type": "string"},
		{"name": "tags", "type": {"type": "array", "items": "string"}},
		{"name": "images", "type": {"type": "array", "items": {
			"type": "record",
			"name": "image",
			"fields": [
				{"name": "src", "type": "string"},
				{"name": "alt", "type": "string"}
			]
		}}},
		{"name": "badge", "type": "string"}
	]
}`

type (
	CatalogEventV1 struct {
		Slug           string           `avro:"slug"`
		Deleted        bool             `avro:"deleted"`
		Title          string           `avro:"title"`
		Brand          string           `avro:"brand"`
		Description    string           `avro:"description"`
		Price          float64          `avro:"price"`
		CompareAtPrice *float64         `avro:"compare_at_price"`
		Category       string           `avro:"category"`
		Tags           []string         `avro:"tags"`
		Images         []ProductImageV1 `avro:"images"`
		Badge          string           `avro:"badge"`
	}

	ProductImageV1 struct {
		Src string `avro:"src"`
		Alt string `avro:"alt"`
	}
)
