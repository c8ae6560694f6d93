package config

import "github.com/scoir/anoncreds/pkg/framework"

// Provider loads a Config from a file or the default search path
type Provider interface {
	Load(file string) Config
}

type Config interface {
	WithAMQP(opts ...Option) Config
	AMQPAddress() string
	AMQPConfig() (*framework.AMQPConfig, error)

	WithDatastore(opts ...Option) Config
	DataStore() (*framework.DatastoreConfig, error)

	WithExecutor(opts ...Option) Config
	Executor() (*framework.ExecutorConfig, error)

	GetString(s string) string
	GetInt(s string) int

	Endpoint(s string) (*framework.Endpoint, error)
}
