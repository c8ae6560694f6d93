package config

import (
	"github.com/scoir/anoncreds/pkg/config"
	"github.com/scoir/anoncreds/pkg/framework"
)

type MockConfig struct {
	EndpointFunc      func(s string) (*framework.Endpoint, error)
	EndpointErr       error
	WithDataStoreFunc func() config.Config
	WithAMQPFunc      func() config.Config
	WithExecutorFunc  func() config.Config
	DataStoreFunc     func() (*framework.DatastoreConfig, error)
	DataStoreErr      error
	AMQPConfigFunc    func() (*framework.AMQPConfig, error)
	AMQPErr           error
	ExecutorFunc      func() (*framework.ExecutorConfig, error)
	ExecutorErr       error
	Strings           map[string]string
	Ints              map[string]int
}

func (m MockConfig) GetInt(s string) int {
	return m.Ints[s]
}

func (m MockConfig) WithAMQP(_ ...config.Option) config.Config {
	if m.WithAMQPFunc != nil {
		return m.WithAMQPFunc()
	}

	return m
}

func (m MockConfig) AMQPAddress() string {
	ac, err := m.AMQPConfig()
	if err != nil || ac == nil {
		return ""
	}

	return ac.Endpoint()
}

func (m MockConfig) AMQPConfig() (*framework.AMQPConfig, error) {
	if m.AMQPConfigFunc != nil {
		return m.AMQPConfigFunc()
	}

	if m.AMQPErr != nil {
		return nil, m.AMQPErr
	}

	return nil, nil
}

func (m MockConfig) WithDatastore(_ ...config.Option) config.Config {
	if m.WithDataStoreFunc != nil {
		return m.WithDataStoreFunc()
	}

	return m
}

func (m MockConfig) DataStore() (*framework.DatastoreConfig, error) {
	if m.DataStoreFunc != nil {
		return m.DataStoreFunc()
	}

	if m.DataStoreErr != nil {
		return nil, m.DataStoreErr
	}

	return nil, nil
}

func (m MockConfig) WithExecutor(_ ...config.Option) config.Config {
	if m.WithExecutorFunc != nil {
		return m.WithExecutorFunc()
	}

	return m
}

func (m MockConfig) Executor() (*framework.ExecutorConfig, error) {
	if m.ExecutorFunc != nil {
		return m.ExecutorFunc()
	}

	if m.ExecutorErr != nil {
		return nil, m.ExecutorErr
	}

	return nil, nil
}

func (m MockConfig) GetString(s string) string {
	return m.Strings[s]
}

func (m MockConfig) Endpoint(s string) (*framework.Endpoint, error) {
	if m.EndpointFunc != nil {
		return m.EndpointFunc(s)
	}

	if m.EndpointErr != nil {
		return nil, m.EndpointErr
	}

	return nil, nil
}
