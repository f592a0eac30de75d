// Command ajson-server serves the ajson data and discovery routes.
//
// Configuration comes from the environment (see config.Environment,
// server.Config, mongodb.Config and mysql.Config). The '-config' flag
// points at an optional JSON file whose values take precedence, for example:
//
//	{"AJSONRoute": "/api/json", "DBName": "ajson", "LogLevel": "debug"}
package main

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/NYTimes/ajson/config"
	"github.com/NYTimes/ajson/config/mongodb"
	"github.com/NYTimes/ajson/config/mysql"
	"github.com/NYTimes/ajson/server"
	"github.com/NYTimes/ajson/service"
	"github.com/NYTimes/ajson/store"
)

// fileConfig is the layout of the optional JSON config file.
type fileConfig struct {
	*config.Environment
	*server.Config
}

func main() {
	env := config.LoadEnvironmentFromEnv()
	cfg := server.LoadConfigFromEnv()

	// allow the environment to be overridden by CLI flags and a config file
	var configLocation string
	server.SetConfigOverrides(cfg, &configLocation)
	if configLocation != "" {
		config.LoadJSONFile(configLocation, &fileConfig{Environment: &env, Config: cfg})
	}

	if err := server.ConfigureLogging(cfg); err != nil {
		server.Log.Fatal("unable to access log file: ", err)
	}

	s, err := newStore(env)
	if err != nil {
		server.Log.Fatal("unable to create ajson store: ", err)
	}
	defer func() {
		if err := s.Close(); err != nil {
			server.Log.Warn("unable to close ajson store: ", err)
		}
	}()

	app := server.New(cfg, env, service.New(s))
	if err = server.Run(app); err != nil {
		server.Log.Error("unable to run ajson server: ", err)
	}
}

// storeType returns the configured store type, falling back to mongodb when
// MONGODB_HOSTS is set and to the in-memory store otherwise.
func storeType(env config.Environment, mgo *mongodb.Config) string {
	if env.StoreType != "" {
		return env.StoreType
	}
	if mgo != nil && mgo.Hosts != "" {
		return "mongodb"
	}
	return "memory"
}

func newStore(env config.Environment) (store.Store, error) {
	mgoCfg := mongodb.LoadConfigFromEnv()

	switch typ := storeType(env, mgoCfg); typ {
	case "memory":
		server.Log.Warn("using the in-memory store, records will not survive a restart")
		return store.NewMemory()
	case "mongodb":
		return store.NewMongo(mgoCfg, env.DBName)
	case "mysql":
		sqlCfg := mysql.LoadConfigFromEnv()
		if sqlCfg == nil {
			return nil, errors.New("mysql store requested but MYSQL_HOST_NAME is not set")
		}
		db, err := sqlCfg.DB()
		if err != nil {
			return nil, errors.Wrap(err, "unable to open mysql connection")
		}
		s := store.NewMySQL(db, sqlCfg.TableName())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err = s.CreateTable(ctx, sqlCfg.UniqueKey1); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil
	default:
		return nil, errors.Errorf("unknown store type %q", typ)
	}
}
