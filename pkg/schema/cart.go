package schema

const CartEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "cart_event",
	"fields": [
		{"name": "slug", "type": "string"},
		{"name": "qty", "type": "int"}
	]
}`

type CartEventV1 struct {
	Slug string `avro:"slug"`
	Qty  int    `avro:"qty"`
}
