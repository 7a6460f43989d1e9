package store

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/carecompass/carecompass-api/schema"
)

const (
	mongoLogPrefix = "mongo"
	defaultTimeout = 5 * time.Second
)

// FacilityStore supplies the static facility registry. The registry is read
// once at startup and treated as immutable afterwards.
type FacilityStore interface {
	ListFacilities() ([]schema.Facility, error)
	Pinger
	Closer
}

// Closer - close db connection
type Closer interface {
	Close()
}

// Pinger - ping database
type Pinger interface {
	Ping() error
}

type mongoDB struct {
	client   *mongo.Client
	database string
}

// Ping - ping mongo db
func (m mongoDB) Ping() error {
	return m.client.Ping(context.Background(), nil)
}

// Close - close mongo db connections
func (m mongoDB) Close() {
	log.WithField("prefix", mongoLogPrefix).Info("closing mongo db connections")
	_ = m.client.Disconnect(context.Background())
}

// ListFacilities reads the whole facility collection in insertion order
func (m mongoDB) ListFacilities() ([]schema.Facility, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.FacilityCollection)

	cur, err := c.Find(ctx, bson.M{})
	if nil != err {
		log.WithField("prefix", mongoLogPrefix).Errorf("query facility registry with error: %s", err)
		return nil, err
	}

	var facilities []schema.Facility
	if err := cur.All(ctx, &facilities); nil != err {
		return nil, err
	}

	log.WithField("prefix", mongoLogPrefix).Debugf("facility registry query gets %d records", len(facilities))

	return facilities, nil
}

// NewMongoStore - facility registry backed by a mongo collection
func NewMongoStore(client *mongo.Client, database string) FacilityStore {
	return &mongoDB{
		client:   client,
		database: database,
	}
}
