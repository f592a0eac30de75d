package store

import (
	"context"

	"github.com/pkg/errors"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/NYTimes/ajson/ajson"
	"github.com/NYTimes/ajson/config/mongodb"
)

// Mongo is a Store backed by a MongoDB collection.
type Mongo struct {
	session    *mgo.Session
	db         string
	collection string
}

// mongoRecord is the stored layout of a record. "key 2" may be missing
// from documents written by other clients.
type mongoRecord struct {
	ID   bson.ObjectId `bson:"_id,omitempty"`
	Key1 string        `bson:"key1"`
	Key2 string        `bson:"key 2,omitempty"`
}

// NewMongo dials MongoDB with the given config and returns a Store using
// the named collection. If cfg.UniqueKey1 is set, a unique index on key1
// is ensured so MongoDB rejects duplicate inserts.
func NewMongo(cfg *mongodb.Config, collection string) (*Mongo, error) {
	s, err := cfg.Dial()
	if err != nil {
		return nil, err
	}

	m := &Mongo{session: s, db: cfg.DB, collection: collection}
	if cfg.UniqueKey1 {
		err = s.DB(m.db).C(m.collection).EnsureIndex(mgo.Index{
			Key:    []string{ajson.Key1Field},
			Unique: true,
		})
		if err != nil {
			s.Close()
			return nil, errors.Wrap(err, "unable to ensure unique key1 index")
		}
	}
	return m, nil
}

// FindByKey1 looks up a single document by key1.
func (m *Mongo) FindByKey1(_ context.Context, key1 string) (*ajson.Record, error) {
	s := m.session.Copy()
	defer s.Close()

	var doc mongoRecord
	err := s.DB(m.db).C(m.collection).Find(bson.M{ajson.Key1Field: key1}).One(&doc)
	if err == mgo.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "unable to find record")
	}

	rec := doc.record()
	return &rec, nil
}

// Insert saves the record as a new document with a fresh ObjectId.
func (m *Mongo) Insert(_ context.Context, rec *ajson.Record) error {
	s := m.session.Copy()
	defer s.Close()

	doc := newMongoRecord(*rec)
	doc.ID = bson.NewObjectId()
	if err := s.DB(m.db).C(m.collection).Insert(doc); err != nil {
		return errors.Wrap(err, "unable to insert record")
	}
	rec.ID = doc.ID.Hex()
	return nil
}

// Close closes the root session.
func (m *Mongo) Close() error {
	m.session.Close()
	return nil
}

func newMongoRecord(rec ajson.Record) mongoRecord {
	doc := mongoRecord{Key1: rec.Key1, Key2: rec.Key2}
	if bson.IsObjectIdHex(rec.ID) {
		doc.ID = bson.ObjectIdHex(rec.ID)
	}
	return doc
}

func (d mongoRecord) record() ajson.Record {
	rec := ajson.Shape(map[string]interface{}{
		ajson.Key1Field: d.Key1,
		ajson.Key2Field: d.Key2,
	})
	if d.ID.Valid() {
		rec.ID = d.ID.Hex()
	}
	return rec
}
