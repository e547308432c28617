// Package survey holds the hair-care questionnaire, the rules that turn
// answers into a store category and concern tags, and the step-by-step
// wizard that collects the answers.
package survey

import "github.com/niksmo/storefront/internal/core/domain"

const (
	QuestionHairColor  = "hair_color"
	QuestionProcess    = "process"
	QuestionScalp      = "scalp"
	QuestionLoss       = "loss"
	QuestionEnds       = "ends"
	QuestionPreference = "preference"
	QuestionNatural    = "natural"
)

const (
	ChoiceDyed     = "dyed"
	ChoiceUndyed   = "undyed"
	ChoiceNormal   = "normal"
	ChoiceOily     = "oily"
	ChoiceDry      = "dry"
	ChoiceDandruff = "dandruff"
	ChoiceYes      = "yes"
	ChoiceNo       = "no"

	// ChoiceNone excludes every other choice of a multi-select question.
	ChoiceNone = "none"
)

// Questions is the storefront questionnaire in display order.
var Questions = []domain.Question{
	{
		ID:       QuestionHairColor,
		Title:    "Saçın boyalı mı?",
		Subtitle: "Bu bilgi renk koruma / onarım rutini için önemli.",
		Kind:     domain.QuestionSingle,
		Choices: []domain.Choice{
			{ID: ChoiceDyed, Title: "Boyalı", Desc: "Renk koruma odaklı", Emoji: "🎨"},
			{ID: ChoiceUndyed, Title: "Boyasız", Desc: "Denge & bakım", Emoji: "🌿"},
		},
	},
	{
		ID:       QuestionProcess,
		Title:    "Saçında işlem var mı?",
		Subtitle: "Röfle, balyaj, ombre, perma vb.",
		Kind:     domain.QuestionMulti,
		Choices: []domain.Choice{
			{ID: "highlights", Title: "Röfle", Emoji: "✨"},
			{ID: "balayage", Title: "Balyaj", Emoji: "🌟"},
			{ID: "ombre", Title: "Ombre", Emoji: "🌈"},
			{ID: "perm", Title: "Perma", Emoji: "🌀"},
			{ID: "keratin", Title: "Keratin / Brezilya fön", Emoji: "💎"},
			{ID: ChoiceNone, Title: "Yok", Emoji: "✅"},
		},
	},
	{
		ID:       QuestionScalp,
		Title:    "Saç derin nasıl?",
		Subtitle: "Dengeyi doğru kurarsak her şey kolaylaşır.",
		Kind:     domain.QuestionSingle,
		Choices: []domain.Choice{
			{ID: ChoiceNormal, Title: "Normal", Desc: "Dengeli", Emoji: "🙂"},
			{ID: ChoiceOily, Title: "Yağlı", Desc: "Arındırma / denge", Emoji: "💧"},
			{ID: ChoiceDry, Title: "Kuru", Desc: "Nem / yatıştırma", Emoji: "🌵"},
			{ID: ChoiceDandruff, Title: "Kepek", Desc: "Arındırma + bakım", Emoji: "🧼"},
		},
	},
	{
		ID:       QuestionLoss,
		Title:    "Saç dökülmesi yaşıyor musun?",
		Subtitle: "Dökülme rutini ayrı tasarlanır.",
		Kind:     domain.QuestionSingle,
		Choices: []domain.Choice{
			{ID: ChoiceYes, Title: "Evet", Desc: "Tonik + bakım", Emoji: "🧴"},
			{ID: ChoiceNo, Title: "Hayır", Desc: "Standart rutin", Emoji: "👌"},
		},
	},
	{
		ID:       QuestionEnds,
		Title:    "Uçlarda kırılma / yıpranma var mı?",
		Subtitle: "Maske & onarım ürünleri için belirleyici.",
		Kind:     domain.QuestionSingle,
		Choices: []domain.Choice{
			{ID: ChoiceYes, Title: "Var", Desc: "Onarım odaklı", Emoji: "🛠️"},
			{ID: ChoiceNo, Title: "Yok", Desc: "Koruma odaklı", Emoji: "🧡"},
		},
	},
	{
		ID:       QuestionPreference,
		Title:    "Tercihin hangisi?",
		Subtitle: "Rutinin hedefini belirler.",
		Kind:     domain.QuestionSingle,
		Choices: []domain.Choice{
			{ID: "grow", Title: "Uzatmak istiyorum", Desc: "Kök & uç dengesi", Emoji: "📏"},
			{ID: "trim", Title: "Kısaltmak istiyorum", Desc: "Bakım kolaylığı", Emoji: "✂️"},
		},
	},
	{
		ID:       QuestionNatural,
		Title:    "İçerikte önceliğin ne?",
		Subtitle: "Doğal/organik hassasiyeti olanlar için filtreleriz.",
		Kind:     domain.QuestionSingle,
		Choices: []domain.Choice{
			{ID: "natural", Title: "Doğal/organik öncelikli", Desc: "Daha temiz içerik", Emoji: "🌿"},
			{ID: "any", Title: "Fark etmez", Desc: "Sonuç odaklı", Emoji: "🎯"},
		},
	},
}
