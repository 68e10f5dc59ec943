package db

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"mera-bestie/config"
	"mera-bestie/models"
	"mera-bestie/services"
)

const (
	UsersCollection      = "users"
	SellersCollection    = "sellers"
	ProductsCollection   = "products"
	CartsCollection      = "carts"
	OrdersCollection     = "orders"
	ComplaintsCollection = "complaints"
	CouponsCollection    = "coupons"
)

// Mongo owns the client and hands out the repositories built on it.
type Mongo struct {
	Client       *mongo.Client
	db           *mongo.Database
	queryTimeout time.Duration
	logger       *zap.Logger
}

// Connect dials MongoDB and pings it before returning.
func Connect(ctx context.Context, cfg config.MongoDBConfig, logger *zap.Logger) (*Mongo, error) {
	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize)

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("connected to MongoDB", zap.String("database", cfg.Database))
	return &Mongo{
		Client:       client,
		db:           client.Database(cfg.Database),
		queryTimeout: cfg.QueryTimeout,
		logger:       logger,
	}, nil
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	if err := m.Client.Disconnect(ctx); err != nil {
		return err
	}
	m.logger.Info("disconnected from MongoDB")
	return nil
}

func (m *Mongo) collection(name string) *mongo.Collection {
	return m.db.Collection(name)
}

// EnsureIndexes creates the unique indexes the repositories rely on to
// report models.ErrDuplicate, and the catalog search index.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	unique := map[string][]string{
		UsersCollection:      {"email", "userId"},
		SellersCollection:    {"email", "sellerId"},
		ProductsCollection:   {"productId"},
		CartsCollection:      {"userId"},
		OrdersCollection:     {"orderId"},
		ComplaintsCollection: {"complaintNumber"},
		CouponsCollection:    {"code"},
	}
	for coll, fields := range unique {
		indexes := make([]mongo.IndexModel, 0, len(fields))
		for _, f := range fields {
			indexes = append(indexes, mongo.IndexModel{
				Keys:    bson.D{{Key: f, Value: 1}},
				Options: options.Index().SetUnique(true),
			})
		}
		if _, err := m.collection(coll).Indexes().CreateMany(ctx, indexes); err != nil {
			return err
		}
	}

	_, err := m.collection(ProductsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}, {Key: "category", Value: 1}},
	})
	if err != nil {
		return err
	}
	_, err = m.collection(OrdersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
	})
	return err
}

// timeout bounds a single repository call.
func (m *Mongo) timeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, m.queryTimeout)
}

// findOne decodes the first match into out, reporting false when nothing
// matches.
func findOne(ctx context.Context, coll *mongo.Collection, filter any, out any) (bool, error) {
	err := coll.FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// insert maps unique index violations to models.ErrDuplicate.
func insert(ctx context.Context, coll *mongo.Collection, doc any) error {
	_, err := coll.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrDuplicate
	}
	return err
}

var (
	_ services.UserRepository      = (*UserRepository)(nil)
	_ services.SellerRepository    = (*SellerRepository)(nil)
	_ services.ProductRepository   = (*ProductRepository)(nil)
	_ services.CartRepository      = (*CartRepository)(nil)
	_ services.OrderRepository     = (*OrderRepository)(nil)
	_ services.ComplaintRepository = (*ComplaintRepository)(nil)
	_ services.CouponRepository    = (*CouponRepository)(nil)
)
