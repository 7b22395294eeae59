package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"time"

	"github.com/vfg2006/sales-dashboard-api/infrastructure/migration"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/querying"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
)

// campos que podem faltar no documento e vão para o fim da ordenação
var nullableMongoFields = map[string]bool{
	"age":  true,
	"date": true,
}

const missingSortField = "_sortMissing"

type MongoSalesRepository struct {
	coll *mongo.Collection
}

func NewMongoSalesRepository(coll *mongo.Collection) *MongoSalesRepository {
	return &MongoSalesRepository{
		coll: coll,
	}
}

func (r *MongoSalesRepository) Source() string {
	return SourceMongo
}

// buildSalesFilter monta o $match com a mesma semântica do motor em memória.
// O termo de busca é escapado antes de virar expressão regular.
func buildSalesFilter(q domain.SalesQuery) bson.M {
	clauses := bson.A{}

	if q.SearchTerm != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q.SearchTerm), Options: "i"}
		clauses = append(clauses, bson.M{"$or": bson.A{
			bson.M{"customerName": pattern},
			bson.M{"phoneNumber": pattern},
		}})
	}

	inSet := func(field string, values []string) {
		if len(values) > 0 {
			clauses = append(clauses, bson.M{field: bson.M{"$in": values}})
		}
	}
	inSet("customerRegion", q.Regions)
	inSet("gender", q.Genders)
	inSet("productCategory", q.Categories)
	inSet("tags", q.Tags)
	inSet("paymentMethod", q.PaymentMethods)

	if len(q.AgeRanges) > 0 {
		clauses = append(clauses, ageFilter(querying.ParseAgeRanges(q.AgeRanges)))
	}

	if q.DateFrom != nil || q.DateTo != nil {
		dateRange := bson.M{}
		if q.DateFrom != nil {
			dateRange["$gte"] = *q.DateFrom
		}
		if q.DateTo != nil {
			dateRange["$lte"] = *q.DateTo
		}
		clauses = append(clauses, bson.M{"date": dateRange})
	}

	if len(clauses) == 0 {
		return bson.M{}
	}
	return bson.M{"$and": clauses}
}

func ageFilter(ranges []querying.AgeRange) bson.M {
	if len(ranges) == 0 {
		// $in vazio nunca casa
		return bson.M{"age": bson.M{"$in": bson.A{}}}
	}

	or := bson.A{}
	for _, ar := range ranges {
		bounds := bson.M{"$gte": ar.Min}
		if !ar.Unbounded {
			bounds["$lte"] = ar.Max
		}
		or = append(or, bson.M{"age": bounds})
	}
	return bson.M{"$or": or}
}

// buildSalesPipeline ordena pelo campo pedido com _id como desempate.
// sortBy fora da lista branca do motor mantém a ordem de inserção.
func buildSalesPipeline(filter bson.M, q domain.SalesQuery, skip, limit int) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
	}

	sort := bson.D{}
	nullable := false
	if querying.IsSortable(q.SortBy) {
		dir := 1
		if q.SortOrder == domain.SortDesc {
			dir = -1
		}

		if nullableMongoFields[q.SortBy] {
			nullable = true
			pipeline = append(pipeline, bson.D{{Key: "$addFields", Value: bson.M{
				missingSortField: bson.M{"$cond": bson.A{bson.M{"$gt": bson.A{"$" + q.SortBy, nil}}, 0, 1}},
			}}})
			sort = append(sort, bson.E{Key: missingSortField, Value: 1})
		}
		sort = append(sort, bson.E{Key: q.SortBy, Value: dir})
	}
	sort = append(sort, bson.E{Key: "_id", Value: 1})

	pipeline = append(pipeline,
		bson.D{{Key: "$sort", Value: sort}},
		bson.D{{Key: "$skip", Value: int64(skip)}},
		bson.D{{Key: "$limit", Value: int64(limit)}},
	)
	if nullable {
		pipeline = append(pipeline, bson.D{{Key: "$project", Value: bson.M{missingSortField: 0}}})
	}

	return pipeline
}

func buildStatsPipeline(filter bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$group", Value: bson.M{
			"_id":      nil,
			"units":    bson.M{"$sum": "$quantity"},
			"amount":   bson.M{"$sum": "$totalAmount"},
			"discount": bson.M{"$sum": bson.M{"$subtract": bson.A{"$totalAmount", "$finalAmount"}}},
		}}},
	}
}

// Query executa contagem, agregação e busca em paralelo
// sobre o banco de documentos
func (r *MongoSalesRepository) Query(ctx context.Context, q domain.SalesQuery) (*domain.SalesPage, error) {
	filter := buildSalesFilter(q)

	return queryPage(ctx, SourceMongo, q,
		func(ctx context.Context) (int, domain.SalesStats, error) {
			return r.aggregate(ctx, filter)
		},
		func(ctx context.Context, offset, limit int) ([]*domain.Transaction, error) {
			return r.fetch(ctx, buildSalesPipeline(filter, q, offset, limit))
		},
	)
}

// aggregate conta e soma em paralelo; são duas operações no mongo
func (r *MongoSalesRepository) aggregate(ctx context.Context, filter bson.M) (int, domain.SalesStats, error) {
	var (
		total int64
		stats domain.SalesStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = r.coll.CountDocuments(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = r.stats(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, domain.SalesStats{}, err
	}

	return int(total), stats, nil
}

func (r *MongoSalesRepository) stats(ctx context.Context, filter bson.M) (domain.SalesStats, error) {
	cursor, err := r.coll.Aggregate(ctx, buildStatsPipeline(filter))
	if err != nil {
		return domain.SalesStats{}, err
	}
	defer cursor.Close(ctx)

	var result struct {
		Units    int64   `bson:"units"`
		Amount   float64 `bson:"amount"`
		Discount float64 `bson:"discount"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err != nil {
			return domain.SalesStats{}, err
		}
	}
	if err := cursor.Err(); err != nil {
		return domain.SalesStats{}, err
	}

	return domain.SalesStats{
		TotalUnitsSold: int(result.Units),
		TotalAmount:    utils.RoundWithTwoDecimalPlace(result.Amount),
		TotalDiscount:  utils.RoundWithTwoDecimalPlace(result.Discount),
	}, nil
}

func (r *MongoSalesRepository) fetch(ctx context.Context, pipeline mongo.Pipeline) ([]*domain.Transaction, error) {
	opts := options.Aggregate().SetCollation(&options.Collation{Locale: "en"})

	cursor, err := r.coll.Aggregate(ctx, pipeline, opts)
	if err != nil {
		return nil, err
	}

	transactions := make([]*domain.Transaction, 0)
	if err := cursor.All(ctx, &transactions); err != nil {
		return nil, err
	}

	for _, t := range transactions {
		if t.Tags == nil {
			t.Tags = []string{}
		}
		if !t.Date.IsZero() {
			t.Date = t.Date.UTC()
		}
	}

	return transactions, nil
}

func (r *MongoSalesRepository) FilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	filterOptions := &domain.FilterOptions{AgeRanges: slices.Clone(domain.DefaultAgeRanges)}

	g, gctx := errgroup.WithContext(ctx)

	distinct := func(field string, dst *[]string) func() error {
		return func() error {
			values, err := r.coll.Distinct(gctx, field, bson.M{})
			if err != nil {
				return err
			}
			*dst = distinctStrings(values)
			return nil
		}
	}

	g.Go(distinct("customerRegion", &filterOptions.Regions))
	g.Go(distinct("gender", &filterOptions.Genders))
	g.Go(distinct("productCategory", &filterOptions.Categories))
	g.Go(distinct("paymentMethod", &filterOptions.PaymentMethods))
	g.Go(distinct("tags", &filterOptions.Tags))
	g.Go(func() error {
		minDate, maxDate, err := r.dateBounds(gctx)
		if err != nil {
			return err
		}
		if !minDate.IsZero() {
			filterOptions.MinDate = minDate.UTC().Format(time.DateOnly)
			filterOptions.MaxDate = maxDate.UTC().Format(time.DateOnly)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, unavailable(SourceMongo, "erro ao buscar opções de filtro", err)
	}

	return filterOptions, nil
}

func distinctStrings(values []interface{}) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func (r *MongoSalesRepository) dateBounds(ctx context.Context) (time.Time, time.Time, error) {
	var bounds [2]time.Time

	for i, dir := range []int{1, -1} {
		var doc struct {
			Date time.Time `bson:"date"`
		}

		opts := options.FindOne().
			SetSort(bson.D{{Key: "date", Value: dir}}).
			SetProjection(bson.M{"date": 1})

		err := r.coll.FindOne(ctx, bson.M{"date": bson.M{"$exists": true}}, opts).Decode(&doc)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return time.Time{}, time.Time{}, nil
		}
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		bounds[i] = doc.Date
	}

	return bounds[0], bounds[1], nil
}

func (r *MongoSalesRepository) Count(ctx context.Context) (int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, unavailable(SourceMongo, "erro ao contar vendas", err)
	}
	return total, nil
}

func (r *MongoSalesRepository) EnsureSchema(ctx context.Context) error {
	return migration.EnsureMongoIndexes(ctx, r.coll)
}

func (r *MongoSalesRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, unavailable(SourceMongo, "erro ao limpar vendas", err)
	}
	return result.DeletedCount, nil
}

// InsertBatch usa inserção não ordenada; duplicatas de transactionId são ignoradas
func (r *MongoSalesRepository) InsertBatch(ctx context.Context, batch []*domain.Transaction) (int64, error) {
	if len(batch) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, len(batch))
	for i, t := range batch {
		docs[i] = t
	}

	result, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err == nil {
		return int64(len(result.InsertedIDs)), nil
	}

	var bulkErr mongo.BulkWriteException
	if errors.As(err, &bulkErr) && onlyDuplicates(bulkErr) {
		return int64(len(batch) - len(bulkErr.WriteErrors)), nil
	}

	return 0, unavailable(SourceMongo, fmt.Sprintf("erro ao inserir lote de %d vendas", len(batch)), err)
}

func onlyDuplicates(bulkErr mongo.BulkWriteException) bool {
	if bulkErr.WriteConcernError != nil || len(bulkErr.WriteErrors) == 0 {
		return false
	}
	for _, we := range bulkErr.WriteErrors {
		if we.Code != 11000 {
			return false
		}
	}
	return true
}
