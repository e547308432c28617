package httphandler

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/niksmo/storefront/internal/core/cart"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/survey"
	"github.com/niksmo/storefront/pkg/money"
)

type errorBody struct {
	Error string `json:"error"`
}

type (
	Product struct {
		Slug            string         `json:"slug"`
		Title           string         `json:"title"`
		Brand           string         `json:"brand,omitempty"`
		Description     string         `json:"description,omitempty"`
		Price           float64        `json:"price"`
		CompareAtPrice  *float64       `json:"compareAtPrice"`
		Category        string         `json:"category"`
		Tags            []string       `json:"tags"`
		Images          []ProductImage `json:"images"`
		Badge           string         `json:"badge,omitempty"`
		PriceText       string         `json:"priceText,omitempty"`
		DiscountPercent int            `json:"discountPercent,omitempty"`
	}

	// productRequest is the admin upsert body. Price is a pointer so a
	// missing price is told apart from a free product.
	productRequest struct {
		Product
		Price *float64 `json:"price"`
	}

	ProductImage struct {
		Src string `json:"src"`
		Alt string `json:"alt"`
	}

	catalogPage struct {
		Products []Product `json:"products"`
		Total    int       `json:"total"`
		Facets   facets    `json:"facets"`
	}

	facets struct {
		Categories []categoryCount `json:"categories"`
		MinPrice   float64         `json:"minPrice"`
		MaxPrice   float64         `json:"maxPrice"`
	}

	categoryCount struct {
		Category string `json:"category"`
		Count    int    `json:"count"`
	}

	productDetail struct {
		Product Product   `json:"product"`
		Similar []Product `json:"similar"`
	}
)

func (p Product) toDomain() domain.Product {
	dp := domain.Product{
		Slug:           p.Slug,
		Title:          p.Title,
		Brand:          p.Brand,
		Description:    p.Description,
		Price:          p.Price,
		CompareAtPrice: p.CompareAtPrice,
		Category:       p.Category,
		Tags:           p.Tags,
		Badge:          p.Badge,
	}
	for _, img := range p.Images {
		dp.Images = append(dp.Images, domain.ProductImage(img))
	}
	return dp
}

var errPriceRequired = errors.Join(domain.ErrInvalidProduct, errors.New("price is required"))

func (r productRequest) toDomain() (domain.Product, error) {
	if r.Price == nil {
		return domain.Product{}, errPriceRequired
	}
	p := r.Product
	p.Price = *r.Price
	return p.toDomain(), nil
}

func fromProduct(p domain.Product) Product {
	out := Product{
		Slug:            p.Slug,
		Title:           p.Title,
		Brand:           p.Brand,
		Description:     p.Description,
		Price:           p.Price,
		CompareAtPrice:  p.CompareAtPrice,
		Category:        p.Category,
		Tags:            p.Tags,
		Badge:           p.Badge,
		PriceText:       money.FormatTRY(money.FromFloat(p.Price)),
		DiscountPercent: p.DiscountPercent(),
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if len(p.Images) == 0 {
		out.Images = []ProductImage{ProductImage(p.Cover())}
	}
	for _, img := range p.Images {
		out.Images = append(out.Images, ProductImage(img))
	}
	return out
}

func fromProducts(ps []domain.Product) []Product {
	out := make([]Product, len(ps))
	for i, p := range ps {
		out[i] = fromProduct(p)
	}
	return out
}

func fromCatalogPage(page domain.CatalogPage) catalogPage {
	out := catalogPage{
		Products: fromProducts(page.Products),
		Total:    page.Total,
		Facets: facets{
			Categories: make([]categoryCount, len(page.Facets.Categories)),
			MinPrice:   page.Facets.MinPrice,
			MaxPrice:   page.Facets.MaxPrice,
		},
	}
	for i, c := range page.Facets.Categories {
		out.Facets.Categories[i] = categoryCount(c)
	}
	return out
}

type importIssue struct {
	Row   int    `json:"row,omitempty"`
	Title string `json:"title,omitempty"`
	Error string `json:"error"`
}

type importResult struct {
	Stored  []string      `json:"stored"`
	Skipped []importIssue `json:"skipped"`
}

type (
	cartItem struct {
		ID    string  `json:"id"`
		Title string  `json:"title"`
		Price float64 `json:"price"`
		Image string  `json:"image"`
		Qty   int     `json:"qty"`
	}

	cartBody struct {
		Items    []cartItem `json:"items"`
		Count    int        `json:"count"`
		Subtotal string     `json:"subtotal"`
	}

	addItemRequest struct {
		ID  string `json:"id"`
		Qty int    `json:"qty"`
	}

	totalsBody struct {
		Coupon       string `json:"coupon,omitempty"`
		Subtotal     string `json:"subtotal"`
		Discount     string `json:"discount"`
		Shipping     string `json:"shipping"`
		Total        string `json:"total"`
		TotalText    string `json:"totalText"`
		ShippingFree bool   `json:"shippingFree"`
	}

	checkoutSummary struct {
		Cart   cartBody   `json:"cart"`
		Totals totalsBody `json:"totals"`
	}
)

func fromCart(c domain.Cart) cartBody {
	out := cartBody{
		Items:    make([]cartItem, len(c.Items)),
		Count:    cart.Count(c),
		Subtotal: cart.Subtotal(c).StringFixed(money.Kurus),
	}
	for i, it := range c.Items {
		out.Items[i] = cartItem(it)
	}
	return out
}

func fromTotals(t domain.Totals) totalsBody {
	return totalsBody{
		Coupon:       t.Coupon,
		Subtotal:     t.Subtotal.StringFixed(money.Kurus),
		Discount:     t.Discount.StringFixed(money.Kurus),
		Shipping:     t.Shipping.StringFixed(money.Kurus),
		Total:        t.Total.StringFixed(money.Kurus),
		TotalText:    money.FormatTRY(t.Total),
		ShippingFree: t.Shipping.IsZero(),
	}
}

// An Answer is a JSON string for single choice questions
// and an array for multi choice ones.
type Answer domain.Answer

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Multi != nil {
		return json.Marshal(a.Multi)
	}
	return json.Marshal(a.Single)
}

func (a *Answer) UnmarshalJSON(b []byte) error {
	var single string
	if err := json.Unmarshal(b, &single); err == nil {
		*a = Answer{Single: single}
		return nil
	}

	var multi []string
	if err := json.Unmarshal(b, &multi); err != nil {
		return errors.New("answer must be a string or an array of strings")
	}
	if multi == nil {
		multi = []string{}
	}
	*a = Answer{Multi: multi}
	return nil
}

type Answers map[string]Answer

func (as Answers) toDomain() domain.Answers {
	out := make(domain.Answers, len(as))
	for k, v := range as {
		out[k] = domain.Answer(v)
	}
	return out
}

func fromAnswers(as domain.Answers) Answers {
	out := make(Answers, len(as))
	for k, v := range as {
		out[k] = Answer(v)
	}
	return out
}

type (
	choice struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		Desc  string `json:"desc,omitempty"`
		Emoji string `json:"emoji,omitempty"`
	}

	question struct {
		ID       string   `json:"id"`
		Title    string   `json:"title"`
		Subtitle string   `json:"subtitle,omitempty"`
		Kind     string   `json:"kind"`
		Choices  []choice `json:"choices"`
	}

	wizardState struct {
		Step    int     `json:"step"`
		Answers Answers `json:"answers"`
	}

	wizardRequest struct {
		State  wizardState `json:"state"`
		Action string      `json:"action"`
		Choice string      `json:"choice"`
	}

	wizardView struct {
		State          wizardState     `json:"state"`
		Moved          bool            `json:"moved"`
		Total          int             `json:"total"`
		Progress       int             `json:"progress"`
		CanNext        bool            `json:"canNext"`
		IsResult       bool            `json:"isResult"`
		Question       *question       `json:"question,omitempty"`
		Recommendation *recommendation `json:"recommendation,omitempty"`
	}

	recommendRequest struct {
		Answers Answers `json:"answers"`
		Limit   int     `json:"limit"`
	}

	recommendation struct {
		Category   string    `json:"category"`
		Tags       []string  `json:"tags"`
		Products   []Product `json:"products"`
		StoreQuery string    `json:"storeQuery"`
	}
)

func fromQuestion(q domain.Question) question {
	out := question{
		ID:       q.ID,
		Title:    q.Title,
		Subtitle: q.Subtitle,
		Kind:     string(q.Kind),
		Choices:  make([]choice, len(q.Choices)),
	}
	for i, c := range q.Choices {
		out.Choices[i] = choice(c)
	}
	return out
}

func fromWizard(w *survey.Wizard, moved bool) wizardView {
	state := w.State()
	out := wizardView{
		State:    wizardState{Step: state.Step, Answers: fromAnswers(state.Answers)},
		Moved:    moved,
		Total:    w.Total(),
		Progress: w.Progress(),
		CanNext:  w.CanNext(),
		IsResult: w.IsResult(),
	}
	if q, ok := w.Question(); ok {
		dto := fromQuestion(q)
		out.Question = &dto
	}
	return out
}

func fromRecommendation(r domain.Recommendation) recommendation {
	tags := []string(r.Tags)
	if tags == nil {
		tags = []string{}
	}
	return recommendation{
		Category:   r.Category,
		Tags:       tags,
		Products:   fromProducts(r.Products),
		StoreQuery: r.StoreQuery.Values().Encode(),
	}
}

type (
	block struct {
		Type  string   `json:"type"`
		Text  string   `json:"text,omitempty"`
		Items []string `json:"items,omitempty"`
	}

	video struct {
		Provider string `json:"provider"`
		ID       string `json:"id"`
	}

	blogPost struct {
		Slug         string    `json:"slug"`
		Title        string    `json:"title"`
		Excerpt      string    `json:"excerpt"`
		Cover        string    `json:"cover,omitempty"`
		Tags         []string  `json:"tags"`
		Author       string    `json:"author"`
		Minutes      int       `json:"minutes"`
		Date         time.Time `json:"date"`
		Video        *video    `json:"video,omitempty"`
		ProductSlugs []string  `json:"productSlugs,omitempty"`
		Content      []block   `json:"content,omitempty"`
	}

	blogPostDetail struct {
		Post     blogPost  `json:"post"`
		Products []Product `json:"products"`
	}

	forumReply struct {
		Author string    `json:"author"`
		Date   time.Time `json:"date"`
		Text   string    `json:"text"`
	}

	forumThread struct {
		Slug         string       `json:"slug"`
		Title        string       `json:"title"`
		Excerpt      string       `json:"excerpt"`
		Tags         []string     `json:"tags"`
		Author       string       `json:"author"`
		Date         time.Time    `json:"date"`
		ReplyCount   int          `json:"replyCount"`
		Replies      []forumReply `json:"replies,omitempty"`
		ProductSlugs []string     `json:"productSlugs,omitempty"`
	}

	forumThreadDetail struct {
		Thread   forumThread `json:"thread"`
		Products []Product   `json:"products"`
	}
)

// fromBlogPost leaves the body out of listings.
func fromBlogPost(p domain.BlogPost, withContent bool) blogPost {
	out := blogPost{
		Slug:         p.Slug,
		Title:        p.Title,
		Excerpt:      p.Excerpt,
		Cover:        p.Cover,
		Tags:         p.Tags,
		Author:       p.Author,
		Minutes:      p.Minutes,
		Date:         p.Date,
		ProductSlugs: p.ProductSlugs,
	}
	if p.Video != nil {
		out.Video = &video{Provider: p.Video.Provider, ID: p.Video.ID}
	}
	if withContent {
		for _, b := range p.Content {
			out.Content = append(out.Content, block{string(b.Type), b.Text, b.Items})
		}
	}
	return out
}

func fromForumThread(t domain.ForumThread, withReplies bool) forumThread {
	out := forumThread{
		Slug:         t.Slug,
		Title:        t.Title,
		Excerpt:      t.Excerpt,
		Tags:         t.Tags,
		Author:       t.Author,
		Date:         t.Date,
		ReplyCount:   len(t.Replies),
		ProductSlugs: t.ProductSlugs,
	}
	if withReplies {
		for _, r := range t.Replies {
			out.Replies = append(out.Replies, forumReply(r))
		}
	}
	return out
}
