package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shivaccounts/accounts-api/internal/core/domain"
	"github.com/shivaccounts/accounts-api/internal/core/ports"
)

const productColumns = `id::text, name, type, sales_price::float8, purchase_price::float8,
	sales_tax::float8, purchase_tax::float8, hsn_code, category, created_at, updated_at`

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) ports.ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *ProductRepository) Get(ctx context.Context, id string) (*domain.Product, error) {
	uid, ok := parseID(id)
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	p, err := scanProduct(r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, uid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("query product: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
		INSERT INTO products (id, name, type, sales_price, purchase_price, sales_tax, purchase_tax, hsn_code, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + productColumns

	created, err := scanProduct(r.pool.QueryRow(ctx, q, uuid.New(), p.Name, string(p.Type),
		p.SalesPrice, p.PurchasePrice, p.SalesTax, p.PurchaseTax, p.HSNCode, p.Category))
	if err != nil {
		if ve := outOfRange(err, "price"); ve != nil {
			return nil, ve
		}
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return created, nil
}

func (r *ProductRepository) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	uid, ok := parseID(p.ID)
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	const q = `
		UPDATE products
		SET name = $2, type = $3, sales_price = $4, purchase_price = $5,
		    sales_tax = $6, purchase_tax = $7, hsn_code = $8, category = $9, updated_at = now()
		WHERE id = $1
		RETURNING ` + productColumns

	updated, err := scanProduct(r.pool.QueryRow(ctx, q, uid, p.Name, string(p.Type),
		p.SalesPrice, p.PurchasePrice, p.SalesTax, p.PurchaseTax, p.HSNCode, p.Category))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		if ve := outOfRange(err, "price"); ve != nil {
			return nil, ve
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return updated, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	uid, ok := parseID(id)
	if !ok {
		return domain.ErrProductNotFound
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, uid)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p     domain.Product
		ptype string
	)
	err := row.Scan(&p.ID, &p.Name, &ptype, &p.SalesPrice, &p.PurchasePrice,
		&p.SalesTax, &p.PurchaseTax, &p.HSNCode, &p.Category, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Type = domain.ProductType(ptype)
	p.CreatedAt, p.UpdatedAt = p.CreatedAt.UTC(), p.UpdatedAt.UTC()
	return &p, nil
}
