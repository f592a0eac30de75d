package mongodb

import (
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/NYTimes/ajson/config"
)

// Config holds the information required for connecting
// to a MongoDB replicaset.
type Config struct {
	User       string         `envconfig:"MONGODB_USER"`
	Pw         string         `envconfig:"MONGODB_PW"`
	Hosts      string         `envconfig:"MONGODB_HOSTS"`
	MasterHost string         `envconfig:"MONGODB_MASTER_HOST_NAME"`
	AuthDB     string         `envconfig:"MONGODB_AUTH_DB_NAME"`
	DB         string         `envconfig:"MONGODB_DB_NAME"`
	Mode       string         `envconfig:"MONGODB_MODE"`
	Tags       []bson.DocElem `envconfig:"MONGODB_TAGS"`

	// UniqueKey1 asks the store to ensure a unique index on key1 so
	// duplicates are rejected by MongoDB itself.
	UniqueKey1 bool `envconfig:"MONGODB_UNIQUE_KEY1"`
}

// Dial will attempt to initiate a new mgo.Session with the replicaset.
func (m *Config) Dial() (*mgo.Session, error) {
	return m.dial(m.Hosts)
}

// DialMaster will attempt to initiate a new mgo.Session
// with the Master host.
func (m *Config) DialMaster() (*mgo.Session, error) {
	return m.dial(m.MasterHost)
}

func (m *Config) dial(host string) (*mgo.Session, error) {
	s, err := mgo.Dial(host)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to dial mongodb hosts %q", host)
	}

	if m.User != "" {
		db := s.DB(m.AuthDB)
		err = db.Login(m.User, m.Pw)
		if err != nil {
			s.Close()
			return nil, errors.Wrap(err, "unable to log in to mongodb")
		}
	}

	if mode, ok := m.mode(); ok {
		s.SetMode(mode, false)
	}
	m.setSelectServers(s)

	return s, nil
}

// LoadConfigFromEnv will attempt to load a MongoDB config object
// from environment variables.
func LoadConfigFromEnv() *Config {
	var mongo Config
	config.LoadEnvConfig(&mongo)
	return &mongo
}

func (m *Config) mode() (mgo.Mode, bool) {
	switch strings.ToLower(m.Mode) {
	case "primary":
		return mgo.Primary, true
	case "primarypreferred":
		return mgo.PrimaryPreferred, true
	case "secondary":
		return mgo.Secondary, true
	case "secondarypreferred":
		return mgo.SecondaryPreferred, true
	case "nearest":
		return mgo.Nearest, true
	case "eventual":
		return mgo.Eventual, true
	case "monotonic":
		return mgo.Monotonic, true
	case "strong":
		return mgo.Strong, true
	default:
		return mgo.Strong, false
	}
}

func (m *Config) setSelectServers(s *mgo.Session) {
	if len(m.Tags) == 0 {
		return
	}

	s.SelectServers(bson.D(m.Tags))
	s.Refresh()
}
