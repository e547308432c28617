package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var (
	_ port.ProductsStorage = (*ProductsRepository)(nil)
	_ port.ProductsBulk    = (*ProductsRepository)(nil)
)

const productColumns = `
	slug, title, brand, description, price, compare_at_price,
	category, tags, images, badge`

const upsertProductQuery = `
	INSERT INTO products (
		slug, title, brand, description, price, compare_at_price,
		category, tags, images, badge
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (slug) DO UPDATE SET
		title = EXCLUDED.title,
		brand = EXCLUDED.brand,
		description = EXCLUDED.description,
		price = EXCLUDED.price,
		compare_at_price = EXCLUDED.compare_at_price,
		category = EXCLUDED.category,
		tags = EXCLUDED.tags,
		images = EXCLUDED.images,
		badge = EXCLUDED.badge,
		updated_at = now()
	RETURNING` + productColumns + `;`

// ProductsRepository keeps the catalog in PostgreSQL. New products get the
// highest position and are listed first; updates keep the position.
type ProductsRepository struct {
	sqldb sqldb
}

func NewProductsRepository(sqldb sqldb) ProductsRepository {
	return ProductsRepository{sqldb}
}

func (r ProductsRepository) Get(
	ctx context.Context, slug string,
) (domain.Product, error) {
	const op = "ProductsRepository.Get"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT` + productColumns + ` FROM products WHERE slug = $1;`

	p, err := scanProduct(r.sqldb.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (r ProductsRepository) List(ctx context.Context) (ps []domain.Product, err error) {
	const op = "ProductsRepository.List"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT` + productColumns + ` FROM products ORDER BY position DESC;`

	rows, err := r.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", "err", err)
		}
	}()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ps = append(ps, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (r ProductsRepository) Upsert(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "ProductsRepository.Upsert"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	args, err := productArgs(p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	stored, err := scanProduct(r.sqldb.QueryRowContext(ctx, upsertProductQuery, args...))
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return stored, nil
}

// UpsertMany stores ps in one transaction so that ps[0] ends up first in
// [ProductsRepository.List].
func (r ProductsRepository) UpsertMany(
	ctx context.Context, ps []domain.Product,
) (storeErr error) {
	const op = "ProductsRepository.UpsertMany"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tx, err := r.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}

	defer func() {
		if storeErr == nil {
			if err := tx.Commit(); err != nil {
				storeErr = fmt.Errorf("%s: failed to commit: %w", op, err)
			}
			return
		}

		if err := tx.Rollback(); err != nil {
			log.Error("failed to rollback tx", "err", err)
		}
	}()

	stmt, err := tx.PrepareContext(ctx, upsertProductQuery)
	if err != nil {
		return fmt.Errorf("%s: failed to prepare stmt: %w", op, err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			log.Error("failed to close prepared stmt", "err", err)
		}
	}()

	for _, p := range slices.Backward(ps) {
		args, err := productArgs(p)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("%s: failed to exec: %w", op, err)
		}
	}

	return nil
}

func (r ProductsRepository) Delete(ctx context.Context, slug string) error {
	const op = "ProductsRepository.Delete"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := r.sqldb.ExecContext(ctx, `DELETE FROM products WHERE slug = $1;`, slug)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		p       domain.Product
		compare sql.NullFloat64
		tagsB   []byte
		imagesB []byte
	)

	err := row.Scan(
		&p.Slug, &p.Title, &p.Brand, &p.Description, &p.Price, &compare,
		&p.Category, &tagsB, &imagesB, &p.Badge,
	)
	if err != nil {
		return domain.Product{}, err
	}

	if compare.Valid {
		p.CompareAtPrice = &compare.Float64
	}

	if err := json.Unmarshal(tagsB, &p.Tags); err != nil {
		return domain.Product{}, fmt.Errorf("tags: %w", err)
	}

	var images []productImage
	if err := json.Unmarshal(imagesB, &images); err != nil {
		return domain.Product{}, fmt.Errorf("images: %w", err)
	}
	for _, img := range images {
		p.Images = append(p.Images, domain.ProductImage(img))
	}
	return p, nil
}

type productImage struct {
	Src string `json:"src"`
	Alt string `json:"alt,omitempty"`
}

func productArgs(p domain.Product) ([]any, error) {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsB, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}

	images := make([]productImage, len(p.Images))
	for i, img := range p.Images {
		images[i] = productImage(img)
	}
	imagesB, err := json.Marshal(images)
	if err != nil {
		return nil, err
	}

	var compare sql.NullFloat64
	if p.CompareAtPrice != nil {
		compare = sql.NullFloat64{Float64: *p.CompareAtPrice, Valid: true}
	}

	return []any{
		p.Slug, p.Title, p.Brand, p.Description, p.Price, compare,
		p.Category, string(tagsB), string(imagesB), p.Badge,
	}, nil
}
