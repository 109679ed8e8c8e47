// Package dynamodb implements the user-data repository on a single DynamoDB
// table keyed by (userId, sk).
package dynamodb

import (
	"context"

	"userdata/application/ports"
	"userdata/domain/userdata"
	apperrors "userdata/pkg/errors"
	"userdata/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// UserDataRepository implements ports.UserDataRepository using DynamoDB.
// Every write is an unconditional PutItem; every read is a single Query.
type UserDataRepository struct {
	client    *awsdynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewUserDataRepository creates a new DynamoDB-backed repository.
func NewUserDataRepository(client *awsdynamodb.Client, tableName string, logger *zap.Logger) ports.UserDataRepository {
	return &UserDataRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// PutProfile upserts the caller's PROFILE item.
func (r *UserDataRepository) PutProfile(ctx context.Context, userID string, userLevel int) error {
	return r.put(ctx, userdata.Record{
		UserID:     userID,
		SK:         ProfileSK,
		EntityType: userdata.EntityTypeProfile,
		UserLevel:  userLevel,
		UpdatedAt:  utils.NowMillis(),
	})
}

// GetProfile returns the caller's PROFILE item, or nil when none exists.
func (r *UserDataRepository) GetProfile(ctx context.Context, userID string) (*userdata.Record, error) {
	keyCond := expression.KeyAnd(
		expression.Key("userId").Equal(expression.Value(userID)),
		expression.Key("sk").Equal(expression.Value(ProfileSK)),
	)

	records, err := r.query(ctx, keyCond)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// PutBook upserts a BOOK item. Re-creating an existing bookId silently
// overwrites it.
func (r *UserDataRepository) PutBook(ctx context.Context, userID, bookID, title string) error {
	return r.put(ctx, userdata.Record{
		UserID:     userID,
		SK:         BookSK(bookID),
		EntityType: userdata.EntityTypeBook,
		BookID:     bookID,
		Title:      title,
		CreatedAt:  utils.NowMillis(),
	})
}

// ListBooks returns every BOOK item for the caller in sort-key order.
func (r *UserDataRepository) ListBooks(ctx context.Context, userID string) ([]userdata.Record, error) {
	keyCond := expression.KeyAnd(
		expression.Key("userId").Equal(expression.Value(userID)),
		expression.Key("sk").BeginsWith(BookPrefix),
	)
	return r.query(ctx, keyCond)
}

// PutPage upserts a PAGE item under the given book. The bookId is not checked
// for existence; the hierarchy is advisory addressing, not referential
// integrity.
func (r *UserDataRepository) PutPage(ctx context.Context, userID, bookID, pageNumber string) error {
	return r.put(ctx, userdata.Record{
		UserID:     userID,
		SK:         PageSK(bookID, pageNumber),
		EntityType: userdata.EntityTypePage,
		BookID:     bookID,
		PageNumber: pageNumber,
		CreatedAt:  utils.NowMillis(),
	})
}

// ListPages returns every item under the book's page prefix. WORD items nest
// one level below PAGE items and share the prefix, so they are included in
// the result. Observed behavior of the existing API; callers depend on it, so
// the prefix boundary is left as is.
func (r *UserDataRepository) ListPages(ctx context.Context, userID, bookID string) ([]userdata.Record, error) {
	keyCond := expression.KeyAnd(
		expression.Key("userId").Equal(expression.Value(userID)),
		expression.Key("sk").BeginsWith(PagePrefix(bookID)),
	)
	return r.query(ctx, keyCond)
}

// SaveWords upserts one WORD item per element. The puts are issued
// concurrently with no ordering guarantee and no atomicity across the batch:
// on partial failure the first error is returned while already-issued writes
// stay persisted.
func (r *UserDataRepository) SaveWords(ctx context.Context, userID, bookID, pageNumber string, words []userdata.WordInput) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, w := range words {
		record := userdata.Record{
			UserID:     userID,
			SK:         WordSK(bookID, pageNumber, w.Word),
			EntityType: userdata.EntityTypeWord,
			BookID:     bookID,
			PageNumber: pageNumber,
			Word:       w.Word,
			Meaning:    w.Meaning,
			Example:    w.Example,
			CreatedAt:  utils.NowMillis(),
		}
		g.Go(func() error {
			return r.put(ctx, record)
		})
	}

	if err := g.Wait(); err != nil {
		return apperrors.Wrap(err, "bulk word save")
	}

	r.logger.Debug("saved words",
		zap.String("userId", userID),
		zap.String("bookId", bookID),
		zap.String("pageNumber", pageNumber),
		zap.Int("count", len(words)),
	)
	return nil
}

// ListAll returns the caller's entire partition in sort-key order. No
// sort-key filter is applied, so the result spans every entity type, ordered
// book, then page, then word by the sort key's lexicographic containment.
func (r *UserDataRepository) ListAll(ctx context.Context, userID string) ([]userdata.Record, error) {
	keyCond := expression.Key("userId").Equal(expression.Value(userID))
	return r.query(ctx, keyCond)
}

// put marshals and unconditionally writes one record.
func (r *UserDataRepository) put(ctx context.Context, record userdata.Record) error {
	av, err := attributevalue.MarshalMap(record)
	if err != nil {
		return apperrors.NewInternalError("failed to marshal item").WithCause(err)
	}

	_, err = r.client.PutItem(ctx, &awsdynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		r.logger.Error("PutItem failed",
			zap.String("sk", record.SK),
			zap.String("entityType", record.EntityType),
			zap.Error(err),
		)
		return apperrors.NewDatabaseError("PutItem", err)
	}

	return nil
}

// query runs a single Query with the given key condition and unmarshals the
// result set. DynamoDB returns items in sort-key order; no pagination loop is
// performed.
func (r *UserDataRepository) query(ctx context.Context, keyCond expression.KeyConditionBuilder) ([]userdata.Record, error) {
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build key condition").WithCause(err)
	}

	out, err := r.client.Query(ctx, &awsdynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		r.logger.Error("Query failed", zap.Error(err))
		return nil, apperrors.NewDatabaseError("Query", err)
	}

	records := make([]userdata.Record, 0, len(out.Items))
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &records); err != nil {
		return nil, apperrors.NewInternalError("failed to unmarshal items").WithCause(err)
	}

	return records, nil
}
