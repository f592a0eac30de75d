/*
Package config contains the structs and helpers for managing the process-wide
configuration of an ajson server. There are currently configs for:

  - the ajson Environment (port, route prefixes, environment name, DB name)
  - MongoDB (see config/mongodb)
  - MySQL (see config/mysql)

Every config struct is loaded from environment variables with envconfig. This
package also contains a helper to load any of these structs from a JSON file
and to override the file and log locations from the command line.
*/
package config
