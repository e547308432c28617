package catalog_test

import "github.com/niksmo/storefront/internal/core/domain"

func demoCatalog() []domain.Product {
	return []domain.Product{
		{Slug: "mor-parlaklik-sampuan", Title: "Mor Parlaklık Şampuanı 500ml", Brand: "Güzellik Uzmanı", Price: 349.9, Category: "shampoo", Tags: []string{"colored", "damage"}},
		{Slug: "renk-koruyucu-krem", Title: "Renk Koruyucu Bakım Kremi", Price: 279.9, Category: "hair", Tags: []string{"colored", "dry"}},
		{Slug: "keratin-maske", Title: "Keratin Onarıcı Maske", Price: 399.9, Category: "mask", Tags: []string{"damage", "dry"}},
		{Slug: "isirgan-tonik", Title: "Saç Derisi Tonik – Isırgan", Price: 229.9, Category: "tonic", Tags: []string{"loss", "oily"}},
		{Slug: "isi-koruyucu-sprey", Title: "Isı Koruyucu Sprey", Price: 259.9, Category: "heat-protection", Tags: []string{"damage"}},
		{Slug: "arindirici-sampuan", Title: "Arındırıcı Şampuan", Price: 319.9, Category: "shampoo", Tags: []string{"oily", "dandruff"}},
		{Slug: "nem-serumu", Title: "Nem Serum – İpeksi Dokunuş", Price: 289.9, Category: "serum", Tags: []string{"dry"}},
		{Slug: "sekillendirici-krem", Title: "Şekillendirici Krem", Price: 219.9, Category: "styling", Tags: []string{"dry"}},
	}
}

func slugs(ps []domain.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Slug
	}
	return out
}

func ptr(f float64) *float64 {
	return &f
}
