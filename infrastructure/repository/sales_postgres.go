package repository

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/migration"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/querying"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
	"golang.org/x/sync/errgroup"
)

var salesColumns = []string{
	"transaction_id", "date", "customer_id", "customer_name", "phone_number", "gender", "age",
	"customer_region", "customer_type", "product_id", "product_name", "brand", "product_category",
	"tags", "quantity", "price_per_unit", "discount_percentage", "total_amount", "final_amount",
	"payment_method", "order_status", "delivery_type", "store_id", "store_location",
	"salesperson_id", "employee_name",
}

// sortColumns é a lista branca de sortBy aceitos na consulta SQL
var sortColumns = map[string]string{
	"transactionId":      "transaction_id",
	"date":               "date",
	"customerId":         "customer_id",
	"customerName":       "customer_name",
	"phoneNumber":        "phone_number",
	"gender":             "gender",
	"age":                "age",
	"customerRegion":     "customer_region",
	"customerType":       "customer_type",
	"productId":          "product_id",
	"productName":        "product_name",
	"brand":              "brand",
	"productCategory":    "product_category",
	"quantity":           "quantity",
	"pricePerUnit":       "price_per_unit",
	"discountPercentage": "discount_percentage",
	"totalAmount":        "total_amount",
	"finalAmount":        "final_amount",
	"paymentMethod":      "payment_method",
	"orderStatus":        "order_status",
	"deliveryType":       "delivery_type",
	"storeId":            "store_id",
	"storeLocation":      "store_location",
	"salespersonId":      "salesperson_id",
	"employeeName":       "employee_name",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type PostgresSalesRepository struct {
	conn postgres.Conn
}

func NewPostgresSalesRepository(conn postgres.Conn) *PostgresSalesRepository {
	return &PostgresSalesRepository{
		conn: conn,
	}
}

func (r *PostgresSalesRepository) Source() string {
	return SourcePostgres
}

// buildSalesWhere traduz os critérios da consulta para SQL com a mesma
// semântica do motor em memória
func buildSalesWhere(q domain.SalesQuery) squirrel.And {
	where := squirrel.And{}

	if q.SearchTerm != "" {
		pattern := "%" + likeEscaper.Replace(q.SearchTerm) + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"customer_name": pattern},
			squirrel.ILike{"phone_number": pattern},
		})
	}

	inSet := func(column string, values []string) {
		if len(values) > 0 {
			where = append(where, squirrel.Eq{column: values})
		}
	}
	inSet("customer_region", q.Regions)
	inSet("gender", q.Genders)
	inSet("product_category", q.Categories)
	inSet("payment_method", q.PaymentMethods)

	if len(q.Tags) > 0 {
		where = append(where, squirrel.Expr("tags && ?", pq.Array(q.Tags)))
	}

	if len(q.AgeRanges) > 0 {
		where = append(where, ageCondition(querying.ParseAgeRanges(q.AgeRanges)))
	}

	if q.DateFrom != nil {
		where = append(where, squirrel.GtOrEq{"date": *q.DateFrom})
	}
	if q.DateTo != nil {
		where = append(where, squirrel.LtOrEq{"date": *q.DateTo})
	}

	return where
}

// ageCondition nunca casa quando todas as faixas informadas eram inválidas
func ageCondition(ranges []querying.AgeRange) squirrel.Sqlizer {
	if len(ranges) == 0 {
		return squirrel.Expr("FALSE")
	}

	or := squirrel.Or{}
	for _, ar := range ranges {
		if ar.Unbounded {
			or = append(or, squirrel.GtOrEq{"age": ar.Min})
			continue
		}
		or = append(or, squirrel.And{
			squirrel.GtOrEq{"age": ar.Min},
			squirrel.LtOrEq{"age": ar.Max},
		})
	}
	return or
}

// buildOrderBy usa id como desempate para manter a ordem de inserção,
// como a ordenação estável em memória. Idade e data ausentes ficam por último.
func buildOrderBy(sortBy string, order domain.SortOrder) []string {
	column, ok := sortColumns[sortBy]
	if !ok {
		return []string{"id ASC"}
	}

	dir := "ASC"
	if order == domain.SortDesc {
		dir = "DESC"
	}

	return []string{fmt.Sprintf("%s %s NULLS LAST", column, dir), "id ASC"}
}

func buildSalesSelect(where squirrel.Sqlizer, q domain.SalesQuery, offset, limit int) squirrel.SelectBuilder {
	return squirrel.
		Select(salesColumns...).
		From(migration.SalesTable).
		Where(where).
		OrderBy(buildOrderBy(q.SortBy, q.SortOrder)...).
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar)
}

func buildSalesAggregate(where squirrel.Sqlizer) squirrel.SelectBuilder {
	return squirrel.
		Select(
			"COUNT(*)",
			"COALESCE(SUM(quantity), 0)",
			"COALESCE(SUM(total_amount), 0)",
			"COALESCE(SUM(total_amount - final_amount), 0)",
		).
		From(migration.SalesTable).
		Where(where).
		PlaceholderFormat(squirrel.Dollar)
}

// Query executa contagem/agregação e busca da página em paralelo
func (r *PostgresSalesRepository) Query(ctx context.Context, q domain.SalesQuery) (*domain.SalesPage, error) {
	where := buildSalesWhere(q)

	return queryPage(ctx, SourcePostgres, q,
		func(ctx context.Context) (int, domain.SalesStats, error) {
			return r.aggregate(ctx, where)
		},
		func(ctx context.Context, offset, limit int) ([]*domain.Transaction, error) {
			return r.fetch(ctx, buildSalesSelect(where, q, offset, limit))
		},
	)
}

func (r *PostgresSalesRepository) aggregate(ctx context.Context, where squirrel.Sqlizer) (int, domain.SalesStats, error) {
	query, args, err := buildSalesAggregate(where).ToSql()
	if err != nil {
		return 0, domain.SalesStats{}, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var (
		total    int
		units    int64
		amount   float64
		discount float64
	)
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&total, &units, &amount, &discount); err != nil {
		return 0, domain.SalesStats{}, fmt.Errorf("erro ao agregar vendas: %w", err)
	}

	return total, domain.SalesStats{
		TotalUnitsSold: int(units),
		TotalAmount:    utils.RoundWithTwoDecimalPlace(amount),
		TotalDiscount:  utils.RoundWithTwoDecimalPlace(discount),
	}, nil
}

func (r *PostgresSalesRepository) fetch(ctx context.Context, builder squirrel.SelectBuilder) ([]*domain.Transaction, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	transactions := make([]*domain.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear venda: %w", err)
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return transactions, nil
}

func scanTransaction(rows *sql.Rows) (*domain.Transaction, error) {
	var (
		t    domain.Transaction
		date sql.NullTime
		age  sql.NullInt64
		tags pq.StringArray
	)

	err := rows.Scan(
		&t.TransactionID, &date, &t.CustomerID, &t.CustomerName, &t.PhoneNumber, &t.Gender, &age,
		&t.CustomerRegion, &t.CustomerType, &t.ProductID, &t.ProductName, &t.Brand, &t.ProductCategory,
		&tags, &t.Quantity, &t.PricePerUnit, &t.DiscountPercentage, &t.TotalAmount, &t.FinalAmount,
		&t.PaymentMethod, &t.OrderStatus, &t.DeliveryType, &t.StoreID, &t.StoreLocation,
		&t.SalespersonID, &t.EmployeeName,
	)
	if err != nil {
		return nil, err
	}

	if date.Valid {
		t.Date = date.Time.UTC()
	}
	if age.Valid {
		a := int(age.Int64)
		t.Age = &a
	}
	t.Tags = []string(tags)
	if t.Tags == nil {
		t.Tags = []string{}
	}

	return &t, nil
}

func (r *PostgresSalesRepository) FilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	options := &domain.FilterOptions{AgeRanges: slices.Clone(domain.DefaultAgeRanges)}

	g, gctx := errgroup.WithContext(ctx)

	distinct := func(query string, dst *[]string) func() error {
		return func() error {
			values, err := r.distinctValues(gctx, query)
			if err != nil {
				return err
			}
			*dst = values
			return nil
		}
	}

	g.Go(distinct(distinctColumnQuery("customer_region"), &options.Regions))
	g.Go(distinct(distinctColumnQuery("gender"), &options.Genders))
	g.Go(distinct(distinctColumnQuery("product_category"), &options.Categories))
	g.Go(distinct(distinctColumnQuery("payment_method"), &options.PaymentMethods))
	g.Go(distinct(`SELECT DISTINCT tag FROM sales, unnest(tags) AS tag WHERE tag <> ''`, &options.Tags))
	g.Go(func() error {
		var minDate, maxDate sql.NullTime
		err := r.conn.QueryRow(gctx, `SELECT MIN(date), MAX(date) FROM sales`).Scan(&minDate, &maxDate)
		if err != nil {
			return err
		}
		if minDate.Valid && maxDate.Valid {
			options.MinDate = minDate.Time.UTC().Format(time.DateOnly)
			options.MaxDate = maxDate.Time.UTC().Format(time.DateOnly)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, unavailable(SourcePostgres, "erro ao buscar opções de filtro", err)
	}

	return options, nil
}

func distinctColumnQuery(column string) string {
	return fmt.Sprintf("SELECT DISTINCT %[1]s FROM %[2]s WHERE %[1]s <> ''", column, migration.SalesTable)
}

// distinctValues devolve a primeira coluna do resultado em ordem lexicográfica
func (r *PostgresSalesRepository) distinctValues(ctx context.Context, query string) ([]string, error) {
	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	slices.Sort(values)
	return values, nil
}

func (r *PostgresSalesRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM sales`).Scan(&total); err != nil {
		return 0, unavailable(SourcePostgres, "erro ao contar vendas", err)
	}
	return total, nil
}

func (r *PostgresSalesRepository) EnsureSchema(ctx context.Context) error {
	return migration.ApplyPostgres(ctx, r.conn)
}

func (r *PostgresSalesRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.conn.Exec(ctx, `DELETE FROM sales`)
	if err != nil {
		return 0, unavailable(SourcePostgres, "erro ao limpar vendas", err)
	}
	return result.RowsAffected()
}

func buildSalesInsert(batch []*domain.Transaction) squirrel.InsertBuilder {
	insert := squirrel.
		Insert(migration.SalesTable).
		Columns(salesColumns...).
		Suffix("ON CONFLICT (transaction_id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)

	for _, t := range batch {
		var date, age interface{}
		if !t.Date.IsZero() {
			date = t.Date
		}
		if t.Age != nil {
			age = *t.Age
		}
		tags := t.Tags
		if tags == nil {
			tags = []string{}
		}

		insert = insert.Values(
			t.TransactionID, date, t.CustomerID, t.CustomerName, t.PhoneNumber, t.Gender, age,
			t.CustomerRegion, t.CustomerType, t.ProductID, t.ProductName, t.Brand, t.ProductCategory,
			pq.Array(tags), t.Quantity, t.PricePerUnit, t.DiscountPercentage, t.TotalAmount, t.FinalAmount,
			t.PaymentMethod, t.OrderStatus, t.DeliveryType, t.StoreID, t.StoreLocation,
			t.SalespersonID, t.EmployeeName,
		)
	}

	return insert
}

// InsertBatch grava o lote numa transação. Transaction IDs repetidos são ignorados.
func (r *PostgresSalesRepository) InsertBatch(ctx context.Context, batch []*domain.Transaction) (int64, error) {
	if len(batch) == 0 {
		return 0, nil
	}

	query, args, err := buildSalesInsert(batch).ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var inserted int64
	err = r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok {
				return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
			}
			return err
		}
		inserted, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return 0, unavailable(SourcePostgres, "erro ao inserir lote de vendas", err)
	}

	return inserted, nil
}
