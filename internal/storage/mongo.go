package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"thuchi/internal/core"
)

const (
	keywordCollection = "tu_khoa"
	auditCollection   = "nhat_ky"
)

// Mongo implements Ledger, Keywords and Audit on a MongoDB database.
// Ledger data lives in one collection per user (thuchi_<id>); keyword rules
// and the audit trail are shared collections.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

var (
	_ Ledger   = (*Mongo)(nil)
	_ Keywords = (*Mongo)(nil)
	_ Audit    = (*Mongo)(nil)
)

// Connect dials MongoDB and verifies the connection with a ping. Callers
// treat a failure here as fatal; there is no lazy reconnect logic beyond
// what the driver's pool does internally.
func Connect(ctx context.Context, uri, dbName string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", core.ErrStoreUnavailable)
	}

	return &Mongo{client: client, db: client.Database(dbName)}, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// userColl derives the per-user collection name deterministically on every
// call; the driver pools connections, so no handle cache is kept here.
func (m *Mongo) userColl(userID int64) *mongo.Collection {
	return m.db.Collection(fmt.Sprintf("thuchi_%d", userID))
}

// balanceFilter selects the month's balance record. Balance records are the
// documents without a description; expense entries always carry mo_ta.
func balanceFilter(userID int64, month string) bson.M {
	return bson.M{
		"user_id": userID,
		"month":   month,
		"mo_ta":   bson.M{"$exists": false},
	}
}

func (m *Mongo) Balance(ctx context.Context, userID int64, month string) (core.BalanceRecord, error) {
	var rec core.BalanceRecord
	err := m.userColl(userID).FindOne(ctx, balanceFilter(userID, month)).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return core.BalanceRecord{}, core.ErrNotInitialized
	}
	if err != nil {
		return core.BalanceRecord{}, fmt.Errorf("find balance: %w", err)
	}
	return rec, nil
}

func (m *Mongo) InitBalance(ctx context.Context, userID int64, month string, soTien int64) error {
	_, err := m.Balance(ctx, userID, month)
	if err == nil {
		return core.ErrAlreadyInitialized
	}
	if !errors.Is(err, core.ErrNotInitialized) {
		return err
	}

	rec := core.BalanceRecord{
		UserID:    userID,
		Month:     month,
		SoTien:    soTien,
		CreatedAt: time.Now(),
	}
	if _, err := m.userColl(userID).InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("insert balance: %w", err)
	}
	return nil
}

func (m *Mongo) AddToBalance(ctx context.Context, userID int64, month string, delta int64) error {
	res, err := m.userColl(userID).UpdateOne(
		ctx,
		balanceFilter(userID, month),
		bson.M{"$inc": bson.M{"so_tien": delta}},
	)
	if err != nil {
		return fmt.Errorf("increment balance: %w", err)
	}
	if res.MatchedCount == 0 {
		return core.ErrNotInitialized
	}
	return nil
}

func (m *Mongo) AddExpense(ctx context.Context, e core.ExpenseEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if _, err := m.userColl(e.UserID).InsertOne(ctx, e); err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (m *Mongo) Expenses(ctx context.Context, userID int64, month string) ([]core.ExpenseEntry, error) {
	filter := bson.M{
		"user_id": userID,
		"month":   month,
		"so_tien": bson.M{"$lt": 0},
	}
	cur, err := m.userColl(userID).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find expenses: %w", err)
	}
	defer cur.Close(ctx)

	var out []core.ExpenseEntry
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode expenses: %w", err)
	}
	return out, nil
}

func (m *Mongo) WipeAll(ctx context.Context, userID int64) (int64, error) {
	res, err := m.userColl(userID).DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("wipe ledger: %w", err)
	}
	return res.DeletedCount, nil
}

func (m *Mongo) WipeDay(ctx context.Context, userID int64, day time.Time) (int64, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 0, 1)
	res, err := m.userColl(userID).DeleteMany(ctx, bson.M{
		"user_id":    userID,
		"created_at": bson.M{"$gte": start, "$lt": end},
	})
	if err != nil {
		return 0, fmt.Errorf("wipe day: %w", err)
	}
	return res.DeletedCount, nil
}

func (m *Mongo) keywords() *mongo.Collection {
	return m.db.Collection(keywordCollection)
}

func (m *Mongo) Find(ctx context.Context, tuKhoa string) (core.KeywordRule, error) {
	var rule core.KeywordRule
	err := m.keywords().FindOne(ctx, bson.M{"tu_khoa": tuKhoa}).Decode(&rule)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return core.KeywordRule{}, core.ErrKeywordNotFound
	}
	if err != nil {
		return core.KeywordRule{}, fmt.Errorf("find keyword: %w", err)
	}
	return rule, nil
}

func (m *Mongo) AllDescending(ctx context.Context) ([]core.KeywordRule, error) {
	return m.listKeywords(ctx, bson.D{{Key: "tu_khoa", Value: -1}})
}

func (m *Mongo) AllByCategory(ctx context.Context) ([]core.KeywordRule, error) {
	return m.listKeywords(ctx, bson.D{{Key: "danh_muc", Value: 1}, {Key: "tu_khoa", Value: 1}})
}

func (m *Mongo) listKeywords(ctx context.Context, sort bson.D) ([]core.KeywordRule, error) {
	cur, err := m.keywords().Find(ctx, bson.M{}, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("list keywords: %w", err)
	}
	defer cur.Close(ctx)

	var out []core.KeywordRule
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode keywords: %w", err)
	}
	return out, nil
}

func (m *Mongo) Add(ctx context.Context, rule core.KeywordRule) error {
	if err := rule.Validate(); err != nil {
		return err
	}
	_, err := m.Find(ctx, rule.TuKhoa)
	if err == nil {
		return core.ErrDuplicateKeyword
	}
	if !errors.Is(err, core.ErrKeywordNotFound) {
		return err
	}
	if _, err := m.keywords().InsertOne(ctx, rule); err != nil {
		return fmt.Errorf("insert keyword: %w", err)
	}
	return nil
}

func (m *Mongo) Remove(ctx context.Context, tuKhoa string) (core.KeywordRule, error) {
	var rule core.KeywordRule
	err := m.keywords().FindOneAndDelete(ctx, bson.M{"tu_khoa": tuKhoa}).Decode(&rule)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return core.KeywordRule{}, core.ErrKeywordNotFound
	}
	if err != nil {
		return core.KeywordRule{}, fmt.Errorf("delete keyword: %w", err)
	}
	return rule, nil
}

func (m *Mongo) AppendAudit(ctx context.Context, rec AuditRecord) error {
	if _, err := m.db.Collection(auditCollection).InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}
