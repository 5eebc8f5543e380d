package database

import (
	"context"
	"fmt"
	"time"

	"primetime-picks/logging"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
	Timeout  time.Duration
}

// URI builds the connection string, with authSource set when credentials are given.
func (c Config) URI() string {
	if c.Username != "" && c.Password != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%s/%s?authSource=%s",
			c.Username, c.Password, c.Host, c.Port, c.Database, c.Database)
	}
	return fmt.Sprintf("mongodb://%s:%s/%s", c.Host, c.Port, c.Database)
}

type MongoDB struct {
	client   *mongo.Client
	database *mongo.Database
	logger   *logging.Logger
}

func NewMongoConnection(ctx context.Context, config Config) (*MongoDB, error) {
	logger := logging.WithPrefix("MongoDB")

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = MediumTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if config.Username != "" {
		logger.Infof("Connecting with authentication as user: %s", config.Username)
	} else {
		logger.Info("Connecting without authentication")
	}

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(config.URI()).
		SetServerSelectionTimeout(timeout))
	if err != nil {
		logger.Errorf("Failed to connect: %v", err)
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Errorf("Failed to ping: %v", err)
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Infof("Connected to %s:%s database=%s", config.Host, config.Port, config.Database)
	return &MongoDB{
		client:   client,
		database: client.Database(config.Database),
		logger:   logger,
	}, nil
}

func (m *MongoDB) Close() error {
	ctx, cancel := WithShortTimeout()
	defer cancel()

	if err := m.client.Disconnect(ctx); err != nil {
		m.logger.Errorf("Error disconnecting: %v", err)
		return err
	}
	m.logger.Info("Connection closed")
	return nil
}

// Ping reports whether the primary is reachable.
func (m *MongoDB) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, ShortTimeout)
	defer cancel()

	if err := m.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("MongoDB ping failed: %w", err)
	}
	return nil
}

func (m *MongoDB) GetCollection(name string) *mongo.Collection {
	return m.database.Collection(name)
}

// ensureIndexes creates indexes at repository construction. Failures are
// logged and not fatal so a read-only user can still start the app.
func (m *MongoDB) ensureIndexes(coll *mongo.Collection, indexes []mongo.IndexModel) {
	ctx, cancel := WithMediumTimeout()
	defer cancel()

	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		m.logger.Warnf("Could not create indexes on %s: %v", coll.Name(), err)
	}
}
