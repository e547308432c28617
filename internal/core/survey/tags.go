package survey

import "github.com/niksmo/storefront/internal/core/domain"

// Concern tags shared with the catalog.
const (
	TagColored  = "colored"
	TagOily     = "oily"
	TagDry      = "dry"
	TagDandruff = "dandruff"
	TagLoss     = "loss"
	TagDamage   = "damage"
)

// Store categories a survey can point to.
const (
	CategoryTonic   = "tonic"
	CategoryShampoo = "shampoo"
	CategoryMask    = "mask"
	CategoryHair    = "hair"
)

var scalpTags = map[string]string{
	ChoiceOily:     TagOily,
	ChoiceDry:      TagDry,
	ChoiceDandruff: TagDandruff,
}

// DeriveTags maps answers to a category hint and concern tags.
//
// Tags are added in a fixed order (colored, scalp, loss, damage). The hint
// is tonic for hair loss, otherwise shampoo for an oily or dandruff scalp,
// otherwise mask for damaged ends, otherwise hair.
func DeriveTags(answers domain.Answers) (string, domain.TagSet) {
	var tags domain.TagSet

	if answers.Single(QuestionHairColor) == ChoiceDyed {
		tags = tags.Add(TagColored)
	}

	tags = tags.Add(scalpTags[answers.Single(QuestionScalp)])

	if answers.Single(QuestionLoss) == ChoiceYes {
		tags = tags.Add(TagLoss)
	}

	if answers.Single(QuestionEnds) == ChoiceYes {
		tags = tags.Add(TagDamage)
	}

	return categoryHint(tags), tags
}

func categoryHint(tags domain.TagSet) string {
	switch {
	case tags.Has(TagLoss):
		return CategoryTonic
	case tags.Has(TagDandruff), tags.Has(TagOily):
		return CategoryShampoo
	case tags.Has(TagDamage):
		return CategoryMask
	default:
		return CategoryHair
	}
}
