package config

import (
	"encoding/json"
	"io/ioutil"
	"log"

	"github.com/kelseyhightower/envconfig"
)

// DevelopmentEnv is the environment name that enables verbose error responses.
const DevelopmentEnv = "development"

// Environment holds the settings shared by the ajson app and its routes.
// It is loaded once at start up and passed around by value.
type Environment struct {
	// Port is the port the HTTP listener binds to.
	Port int `envconfig:"PORT" default:"58080"`
	// Env is the environment name. "development" exposes fault details
	// in error responses.
	Env string `envconfig:"APP_ENV" default:"development"`

	// DiscoveryClientRoute is the path prefix of the discovery route.
	DiscoveryClientRoute string `envconfig:"DISCOVERY_CLIENT_ROUTE" default:"/discovery/client"`
	// AJSONRoute is the path prefix of the ajson data route.
	AJSONRoute string `envconfig:"A_JSON_ROUTE" default:"/api/json"`

	// DBName is the MongoDB collection holding ajson records. MySQL reads
	// its table from mysql.Config.
	DBName string `envconfig:"DB_NAME" default:"ajson"`
	// StoreType selects the persistence implementation: "memory", "mongodb"
	// or "mysql". If empty, mongodb is used when MONGODB_HOSTS is set and
	// the in-memory store otherwise.
	StoreType string `envconfig:"STORE_TYPE"`
}

// Development reports whether the environment name is "development".
func (e Environment) Development() bool {
	return e.Env == DevelopmentEnv
}

// EnvAppName is used as a prefix for environment variable
// names when using the LoadXFromEnv funcs.
// It defaults to empty.
var EnvAppName = ""

// LoadEnvConfig will use envconfig to load the
// given config struct from the environment.
func LoadEnvConfig(c interface{}) {
	err := envconfig.Process(EnvAppName, c)
	if err != nil {
		log.Fatal("unable to load env variable: ", err)
	}
}

// LoadEnvironmentFromEnv will load an Environment from environment
// variables, applying the defaults for anything unset.
func LoadEnvironmentFromEnv() Environment {
	var env Environment
	LoadEnvConfig(&env)
	return env
}

// LoadJSONFile is a helper function to read a config file into whatever
// config struct you need. For example, your custom config could be composed
// of an Environment, a server.Config and a mongodb.Config.
func LoadJSONFile(fileName string, cfg interface{}) {
	cb, err := ioutil.ReadFile(fileName)
	if err != nil {
		log.Fatalf("Unable to read config file '%s': %s", fileName, err)
	}

	if err = json.Unmarshal(cb, &cfg); err != nil {
		log.Fatalf("Unable to parse JSON in config file '%s': %s", fileName, err)
	}
}
