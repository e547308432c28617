package httphandler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/adapter/xlsx"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/internal/core/survey"
)

const adminToken = "s3cret"

func price(v float64) *float64 { return &v }

func fixtureProducts() []domain.Product {
	return []domain.Product{
		{Slug: "argan-sampuan", Title: "Argan Şampuan", Brand: "Doğal", Price: 149.9, Category: "shampoo", Tags: []string{"dry"}},
		{Slug: "keratin-maske", Title: "Keratin Maske", Price: 299.5, CompareAtPrice: price(399), Category: "mask", Tags: []string{"damage", "colored"}},
		{Slug: "biotin-tonik", Title: "Biotin Tonik", Price: 219, Category: "tonic", Tags: []string{"loss"}},
		{Slug: "renk-koruyucu-maske", Title: "Renk Koruyucu Maske", Price: 989, Category: "mask", Tags: []string{"colored"}},
	}
}

func fixtureContent() storage.ContentRepository {
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return storage.NewContentRepository(
		[]domain.BlogPost{{
			Slug: "keratin-sonrasi-bakim", Title: "Keratin Sonrası Bakım", Tags: []string{"keratin", "bakım"},
			Date: date, ProductSlugs: []string{"keratin-maske", "yok-boyle-urun"},
			Content: []domain.Block{{Type: domain.BlockParagraph, Text: "Sülfatsız şampuan kullanın."}},
		}},
		[]domain.ForumThread{{
			Slug: "dokulme-icin-tonik", Title: "Dökülme için tonik", Tags: []string{"dökülme"}, Date: date,
			Replies:      []domain.ForumReply{{Author: "Ayşe", Date: date, Text: "Biotin iyi geldi."}},
			ProductSlugs: []string{"biotin-tonik"},
		}},
	)
}

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	s := service.New(
		storage.NewMemoryProducts(fixtureProducts()),
		fixtureContent(),
		storage.NewMemoryCarts(),
	)

	mux := http.NewServeMux()
	httphandler.RegisterHealth(mux)
	httphandler.RegisterCatalog(mux, s, domain.TagMatchAny)
	httphandler.RegisterAdmin(mux, adminToken, s, s)
	httphandler.RegisterCart(mux, s)
	httphandler.RegisterSurvey(mux, s, survey.Questions)
	httphandler.RegisterContent(mux, s)
	return mux
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type productsBody struct {
	Products []struct {
		Slug            string `json:"slug"`
		PriceText       string `json:"priceText"`
		DiscountPercent int    `json:"discountPercent"`
		Images          []struct {
			Src string `json:"src"`
		} `json:"images"`
	} `json:"products"`
	Total  int `json:"total"`
	Facets struct {
		MinPrice float64 `json:"minPrice"`
	} `json:"facets"`
}

func TestHealth(t *testing.T) {
	rec := serve(newTestMux(t), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCatalogHandler(t *testing.T) {
	mux := newTestMux(t)

	t.Run("Filter", func(t *testing.T) {
		rec := serve(mux, httptest.NewRequest(http.MethodGet, "/v1/products?kat=mask&sort=price-desc&max=1000", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode[productsBody](t, rec)
		require.Equal(t, 2, body.Total)
		assert.Equal(t, "renk-koruyucu-maske", body.Products[0].Slug)
		assert.Equal(t, "₺989,00", body.Products[0].PriceText)
		assert.Equal(t, "/demo/urun-1.jpg", body.Products[0].Images[0].Src)
		assert.Equal(t, 25, body.Products[1].DiscountPercent)
		assert.Equal(t, 149.9, body.Facets.MinPrice)
	})

	t.Run("TurkishText", func(t *testing.T) {
		rec := serve(mux, httptest.NewRequest(http.MethodGet, "/v1/products?q=%C5%9EAMPUAN", nil))
		body := decode[productsBody](t, rec)
		require.Equal(t, 1, body.Total)
		assert.Equal(t, "argan-sampuan", body.Products[0].Slug)
	})

	t.Run("Detail", func(t *testing.T) {
		rec := serve(mux, httptest.NewRequest(http.MethodGet, "/v1/products/Keratin%20Maske", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode[struct {
			Product struct{ Slug string } `json:"product"`
			Similar []struct{ Slug string } `json:"similar"`
		}](t, rec)
		assert.Equal(t, "keratin-maske", body.Product.Slug)
		require.NotEmpty(t, body.Similar)
		assert.Equal(t, "renk-koruyucu-maske", body.Similar[0].Slug)
	})

	t.Run("NotFound", func(t *testing.T) {
		rec := serve(mux, httptest.NewRequest(http.MethodGet, "/v1/products/yok", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

type MockCatalogBrowser struct {
	mock.Mock
}

func (m *MockCatalogBrowser) Browse(ctx context.Context, q domain.Query) (domain.CatalogPage, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(domain.CatalogPage), args.Error(1)
}

func (m *MockCatalogBrowser) Product(ctx context.Context, slug string) (domain.ProductDetail, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(domain.ProductDetail), args.Error(1)
}

func TestCatalogHandlerErrors(t *testing.T) {
	browser := new(MockCatalogBrowser)
	browser.On("Browse", mock.Anything, mock.MatchedBy(func(q domain.Query) bool {
		return q.TagMatch == domain.TagMatchAll && len(q.Tags) == 2
	})).Return(domain.CatalogPage{}, errors.New("db down"))

	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, browser, domain.TagMatchAll)

	rec := serve(mux, httptest.NewRequest(http.MethodGet, "/v1/products?c=dry&c=loss", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	browser.AssertExpectations(t)
}

func TestAdminHandler(t *testing.T) {
	adminRequest := func(t *testing.T, method, target string, body any) *http.Request {
		req := jsonRequest(t, method, target, body)
		req.Header.Set(httphandler.AdminTokenHeader, adminToken)
		return req
	}

	t.Run("TokenRequired", func(t *testing.T) {
		mux := newTestMux(t)
		req := jsonRequest(t, http.MethodPost, "/v1/admin/products", map[string]any{"title": "X", "price": 1})
		assert.Equal(t, http.StatusUnauthorized, serve(mux, req).Code)

		req.Header.Set(httphandler.AdminTokenHeader, "wrong")
		assert.Equal(t, http.StatusUnauthorized, serve(mux, req).Code)
	})

	t.Run("UpsertNewFirst", func(t *testing.T) {
		mux := newTestMux(t)
		rec := serve(mux, adminRequest(t, http.MethodPost, "/v1/admin/products", map[string]any{
			"title": "Isı Koruyucu Sprey", "price": 179.9, "category": "styling",
		}))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "isi-koruyucu-sprey", decode[httphandler.Product](t, rec).Slug)

		body := decode[productsBody](t, serve(mux, httptest.NewRequest(http.MethodGet, "/v1/products?sort=pop", nil)))
		assert.Equal(t, "isi-koruyucu-sprey", body.Products[0].Slug)
		assert.Equal(t, 5, body.Total)
	})

	t.Run("Invalid", func(t *testing.T) {
		mux := newTestMux(t)
		rec := serve(mux, adminRequest(t, http.MethodPost, "/v1/admin/products", map[string]any{
			"title": "Bozuk", "price": -5,
		}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid product: price must not be negative",
			decode[map[string]string](t, rec)["error"])

		rec = serve(mux, adminRequest(t, http.MethodPost, "/v1/admin/products", "{"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("PriceRequired", func(t *testing.T) {
		mux := newTestMux(t)
		rec := serve(mux, adminRequest(t, http.MethodPost, "/v1/admin/products", map[string]any{
			"slug": "keratin-maske", "title": "Keratin Maske",
		}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid product: price is required",
			decode[map[string]string](t, rec)["error"])

		rec = serve(mux, httptest.NewRequest(http.MethodGet, "/v1/products/keratin-maske", nil))
		kept := decode[struct{ Product httphandler.Product }](t, rec)
		assert.Equal(t, 299.5, kept.Product.Price)

		rec = serve(mux, adminRequest(t, http.MethodPost, "/v1/admin/products", map[string]any{
			"slug": "ucretsiz-numune", "title": "Ücretsiz Numune", "price": 0,
		}))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Zero(t, decode[httphandler.Product](t, rec).Price)
	})

	t.Run("Delete", func(t *testing.T) {
		mux := newTestMux(t)
		rec := serve(mux, adminRequest(t, http.MethodDelete, "/v1/admin/products/biotin-tonik", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = serve(mux, adminRequest(t, http.MethodDelete, "/v1/admin/products/biotin-tonik", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("ExportImport", func(t *testing.T) {
		mux := newTestMux(t)
		rec := serve(mux, adminRequest(t, http.MethodGet, "/v1/admin/products/export", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, httphandler.XLSXMediaType, rec.Header().Get("Content-Type"))

		ps, rowErrs, err := xlsx.ReadProducts(bytes.NewReader(rec.Body.Bytes()))
		require.NoError(t, err)
		assert.Empty(t, rowErrs)
		require.Len(t, ps, 4)

		ps[0].Price = 129.9
		ps = append(ps, domain.Product{Title: "Yeni Tarak", Price: 39})
		var buf bytes.Buffer
		require.NoError(t, xlsx.WriteProducts(&buf, ps))

		req := httptest.NewRequest(http.MethodPost, "/v1/admin/products/import", &buf)
		req.Header.Set("Content-Type", httphandler.XLSXMediaType)
		req.Header.Set(httphandler.AdminTokenHeader, adminToken)
		rec = serve(httphandler.AllowJSON(mux, httphandler.Uploads), req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		res := decode[struct {
			Stored  []string `json:"stored"`
			Skipped []any    `json:"skipped"`
		}](t, rec)
		assert.Len(t, res.Stored, 5)
		assert.Empty(t, res.Skipped)

		detail := serve(mux, httptest.NewRequest(http.MethodGet, "/v1/products/argan-sampuan", nil))
		assert.Contains(t, detail.Body.String(), `"price":129.9`)
	})

	t.Run("ImportGarbage", func(t *testing.T) {
		mux := newTestMux(t)
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/products/import", strings.NewReader("not a workbook"))
		req.Header.Set(httphandler.AdminTokenHeader, adminToken)
		assert.Equal(t, http.StatusBadRequest, serve(mux, req).Code)
	})
}

type cartBody struct {
	Items []struct {
		ID  string `json:"id"`
		Qty int    `json:"qty"`
	} `json:"items"`
	Count    int    `json:"count"`
	Subtotal string `json:"subtotal"`
}

func TestCartHandler(t *testing.T) {
	mux := newTestMux(t)

	rec := serve(mux, jsonRequest(t, http.MethodPost, "/v1/cart/items", map[string]any{"id": "keratin-maske", "qty": 2}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	session := cookies[0]
	assert.Equal(t, httphandler.CartCookieName, session.Name)
	assert.True(t, session.HttpOnly)

	withSession := func(req *http.Request) *http.Request {
		req.AddCookie(&http.Cookie{Name: session.Name, Value: session.Value})
		return req
	}

	body := decode[cartBody](t, rec)
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, "599.00", body.Subtotal)

	t.Run("SessionScoped", func(t *testing.T) {
		rec := serve(mux, httptest.NewRequest(http.MethodGet, "/v1/cart", nil))
		assert.Empty(t, decode[cartBody](t, rec).Items)

		rec = serve(mux, withSession(httptest.NewRequest(http.MethodGet, "/v1/cart", nil)))
		assert.Len(t, decode[cartBody](t, rec).Items, 1)
	})

	t.Run("IncDec", func(t *testing.T) {
		rec := serve(mux, withSession(httptest.NewRequest(http.MethodPost, "/v1/cart/items/keratin-maske/inc", nil)))
		assert.Equal(t, 3, decode[cartBody](t, rec).Count)

		for range 5 {
			rec = serve(mux, withSession(httptest.NewRequest(http.MethodPost, "/v1/cart/items/keratin-maske/dec", nil)))
		}
		assert.Equal(t, 1, decode[cartBody](t, rec).Count)

		rec = serve(mux, withSession(httptest.NewRequest(http.MethodPost, "/v1/cart/items/Keratin-Maske/inc", nil)))
		assert.Equal(t, 2, decode[cartBody](t, rec).Count)
		rec = serve(mux, withSession(httptest.NewRequest(http.MethodPost, "/v1/cart/items/KERATIN-MASKE/dec", nil)))
		assert.Equal(t, 1, decode[cartBody](t, rec).Count)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		rec := serve(mux, withSession(jsonRequest(t, http.MethodPost, "/v1/cart/items", map[string]any{"id": "yok"})))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Totals", func(t *testing.T) {
		rec := serve(mux, withSession(httptest.NewRequest(http.MethodGet, "/v1/cart/totals?coupon=guzel10", nil)))
		require.Equal(t, http.StatusOK, rec.Code)

		totals := decode[struct {
			Totals map[string]any `json:"totals"`
		}](t, rec).Totals
		assert.Equal(t, "299.50", totals["subtotal"])
		assert.Equal(t, "29.95", totals["discount"])
		assert.Equal(t, "59.00", totals["shipping"])
		assert.Equal(t, "328.55", totals["total"])

		rec = serve(mux, withSession(httptest.NewRequest(http.MethodGet, "/v1/cart/totals?coupon=BEDAVA", nil)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("RemoveAndClear", func(t *testing.T) {
		rec := serve(mux, withSession(httptest.NewRequest(http.MethodDelete, "/v1/cart/items/keratin-maske", nil)))
		assert.Empty(t, decode[cartBody](t, rec).Items)

		rec = serve(mux, withSession(httptest.NewRequest(http.MethodDelete, "/v1/cart", nil)))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("MalformedCookieReplaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/cart", nil)
		req.AddCookie(&http.Cookie{Name: httphandler.CartCookieName, Value: "../../etc"})
		rec := serve(mux, req)
		require.Len(t, rec.Result().Cookies(), 1)
		assert.NotEqual(t, "../../etc", rec.Result().Cookies()[0].Value)
	})
}

type wizardBody struct {
	State struct {
		Step    int            `json:"step"`
		Answers map[string]any `json:"answers"`
	} `json:"state"`
	Moved          bool `json:"moved"`
	Progress       int  `json:"progress"`
	CanNext        bool `json:"canNext"`
	IsResult       bool `json:"isResult"`
	Question       *struct{ ID string } `json:"question"`
	Recommendation *struct {
		Category   string   `json:"category"`
		Tags       []string `json:"tags"`
		StoreQuery string   `json:"storeQuery"`
	} `json:"recommendation"`
}

func TestSurveyHandler(t *testing.T) {
	mux := newTestMux(t)

	t.Run("Questions", func(t *testing.T) {
		rec := serve(mux, httptest.NewRequest(http.MethodGet, "/v1/survey/questions", nil))
		qs := decode[[]map[string]any](t, rec)
		assert.Len(t, qs, len(survey.Questions))
	})

	t.Run("NextRejectedWithoutAnswer", func(t *testing.T) {
		rec := serve(mux, jsonRequest(t, http.MethodPost, "/v1/survey/wizard", map[string]any{
			"state": map[string]any{"step": 0}, "action": "next",
		}))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := decode[wizardBody](t, rec)
		assert.False(t, body.Moved)
		assert.Equal(t, 0, body.State.Step)
	})

	t.Run("ChooseThenNext", func(t *testing.T) {
		first := survey.Questions[0]
		rec := serve(mux, jsonRequest(t, http.MethodPost, "/v1/survey/wizard", map[string]any{
			"state": map[string]any{"step": 0}, "action": "choose", "choice": first.Choices[0].ID,
		}))
		body := decode[wizardBody](t, rec)
		require.True(t, body.CanNext)

		rec = serve(mux, jsonRequest(t, http.MethodPost, "/v1/survey/wizard", map[string]any{
			"state": body.State, "action": "next",
		}))
		body = decode[wizardBody](t, rec)
		assert.True(t, body.Moved)
		assert.Equal(t, 1, body.State.Step)
		require.NotNil(t, body.Question)
		assert.Equal(t, survey.Questions[1].ID, body.Question.ID)
	})

	t.Run("UnknownChoice", func(t *testing.T) {
		rec := serve(mux, jsonRequest(t, http.MethodPost, "/v1/survey/wizard", map[string]any{
			"state": map[string]any{"step": 0}, "action": "choose", "choice": "mor",
		}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ResultCarriesRecommendation", func(t *testing.T) {
		rec := serve(mux, jsonRequest(t, http.MethodPost, "/v1/survey/wizard", map[string]any{
			"state": map[string]any{
				"step": 99,
				"answers": map[string]any{
					"hair_color": "undyed",
					"process":    []string{"keratin"},
					"scalp":      "normal",
					"loss":       "yes",
					"ends":       "no",
					"preference": "grow",
					"natural":    "any",
				},
			},
		}))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := decode[wizardBody](t, rec)
		assert.True(t, body.IsResult)
		assert.Equal(t, len(survey.Questions), body.State.Step)
		assert.Equal(t, 100, body.Progress)
		require.NotNil(t, body.Recommendation)
		assert.Equal(t, "tonic", body.Recommendation.Category)
		assert.Equal(t, []any{"keratin"}, body.State.Answers["process"])
	})

	t.Run("CannotSkipToResult", func(t *testing.T) {
		rec := serve(mux, jsonRequest(t, http.MethodPost, "/v1/survey/wizard", map[string]any{
			"state": map[string]any{"step": 7}, "action": "start",
		}))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := decode[wizardBody](t, rec)
		assert.False(t, body.IsResult)
		assert.Equal(t, 0, body.State.Step)
		assert.Nil(t, body.Recommendation)
	})

	t.Run("PostedAnswersSanitized", func(t *testing.T) {
		rec := serve(mux, jsonRequest(t, http.MethodPost, "/v1/survey/wizard", map[string]any{
			"state": map[string]any{
				"step": 2,
				"answers": map[string]any{
					"hair_color": "bogus",
					"process":    []string{"none", "perm", "zzz"},
				},
			},
			"action": "next",
		}))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := decode[wizardBody](t, rec)
		assert.False(t, body.Moved)
		assert.Equal(t, 0, body.State.Step)
		assert.NotContains(t, body.State.Answers, "hair_color")
		assert.Equal(t, []any{"none"}, body.State.Answers["process"])
	})

	t.Run("Recommendations", func(t *testing.T) {
		rec := serve(mux, jsonRequest(t, http.MethodPost, "/v1/survey/recommendations", map[string]any{
			"answers": map[string]any{"hair_color": "dyed", "ends": "yes"},
			"limit":   2,
		}))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		body := decode[struct {
			Category   string   `json:"category"`
			Tags       []string `json:"tags"`
			Products   []struct{ Slug string } `json:"products"`
			StoreQuery string   `json:"storeQuery"`
		}](t, rec)
		assert.Equal(t, "mask", body.Category)
		assert.Equal(t, []string{"colored", "damage"}, body.Tags)
		require.Len(t, body.Products, 2)
		assert.Equal(t, "keratin-maske", body.Products[0].Slug)
		assert.Equal(t, "c=colored&c=damage&kat=mask&sort=pop", body.StoreQuery)
	})

	t.Run("BadAnswer", func(t *testing.T) {
		rec := serve(mux, jsonRequest(t, http.MethodPost, "/v1/survey/recommendations", map[string]any{
			"answers": map[string]any{"loss": 1},
		}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestContentHandler(t *testing.T) {
	mux := newTestMux(t)

	t.Run("BlogByTag", func(t *testing.T) {
		rec := serve(mux, httptest.NewRequest(http.MethodGet, "/v1/blog?tag=BAKIM", nil))
		posts := decode[[]map[string]any](t, rec)
		require.Len(t, posts, 1)
		assert.NotContains(t, posts[0], "content")

		rec = serve(mux, httptest.NewRequest(http.MethodGet, "/v1/blog?tag=video", nil))
		assert.Empty(t, decode[[]map[string]any](t, rec))
	})

	t.Run("BlogDetail", func(t *testing.T) {
		rec := serve(mux, httptest.NewRequest(http.MethodGet, "/v1/blog/keratin-sonrasi-bakim", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[struct {
			Post struct {
				Content []map[string]any `json:"content"`
			} `json:"post"`
			Products []struct{ Slug string } `json:"products"`
		}](t, rec)
		assert.Len(t, body.Post.Content, 1)
		require.Len(t, body.Products, 1)
		assert.Equal(t, "keratin-maske", body.Products[0].Slug)
	})

	t.Run("ForumDetail", func(t *testing.T) {
		rec := serve(mux, httptest.NewRequest(http.MethodGet, "/v1/forum/Dokulme%20icin%20tonik", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[struct {
			Thread struct {
				ReplyCount int              `json:"replyCount"`
				Replies    []map[string]any `json:"replies"`
			} `json:"thread"`
		}](t, rec)
		assert.Equal(t, 1, body.Thread.ReplyCount)
		assert.Len(t, body.Thread.Replies, 1)
	})

	t.Run("NotFound", func(t *testing.T) {
		rec := serve(mux, httptest.NewRequest(http.MethodGet, "/v1/forum/yok", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
