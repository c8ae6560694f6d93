package config

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/scoir/anoncreds/pkg/framework"
)

const (
	defaultConfig    = "anoncreds-config"
	defaultAMQP      = "anoncreds-amqp-config"
	defaultDataStore = "anoncreds-data-store-config"
	defaultExecutor  = "anoncreds-executor-config"

	envPrefix = "ANONCREDS"
)

// Option configures the config...
type Option func(opts *vpr)

// WithFile merges file instead of the section's default config name.
func WithFile(file string) Option {
	return func(opts *vpr) {
		opts.file = file
	}
}

type ViperConfigProvider struct {
	DefaultConfigName string
}

type vpr struct {
	*viper.Viper
	file string
}

func (r *ViperConfigProvider) Load(file string) Config {
	config := &vpr{
		Viper: viper.New(),
	}

	if file != "" {
		config.SetConfigFile(file)
	} else {
		name := r.DefaultConfigName
		if name == "" {
			name = defaultConfig
		}
		config.SetConfigType("yaml")
		config.AddConfigPath("/etc/anoncreds/")
		config.AddConfigPath("./deploy/")
		config.SetConfigName(name)
	}

	config.SetEnvPrefix(envPrefix)
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()

	config.SetDefault("datastore.database", "mem")

	err := config.BindPFlags(pflag.CommandLine)
	if err != nil {
		logrus.WithError(err).Fatal("failed to bind flags")
	}

	err = config.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || file != "" {
			logrus.WithError(err).WithField("file", config.ConfigFileUsed()).Fatal("failed to read config")
		}
		logrus.Debug("no config file found, using defaults and environment")
	}

	return config
}

func (r *vpr) WithDatastore(opts ...Option) Config {
	for _, opt := range opts {
		opt(r)
	}

	return r.with(r.file, defaultDataStore)
}

func (r *vpr) WithAMQP(opts ...Option) Config {
	for _, opt := range opts {
		opt(r)
	}

	return r.with(r.file, defaultAMQP)
}

func (r *vpr) WithExecutor(opts ...Option) Config {
	for _, opt := range opts {
		opt(r)
	}

	return r.with(r.file, defaultExecutor)
}

func (r *vpr) with(file, defawlt string) Config {
	r.file = ""

	if file != "" {
		return r.withFile(r.SetConfigFile, file)
	}

	return r.withFile(r.SetConfigName, defawlt)
}

func (r *vpr) withFile(setter func(name string), file string) Config {
	setter(file)

	err := r.MergeInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return r
		}
		logrus.WithError(err).WithField("file", r.ConfigFileUsed()).Fatal("failed to merge config")
	}

	return r
}

func (r *vpr) AMQPAddress() string {
	amqpUser := r.GetString("amqp.user")
	amqpPwd := r.GetString("amqp.password")
	amqpHost := r.GetString("amqp.host")
	amqpPort := r.GetInt("amqp.port")
	amqpVHost := r.GetString("amqp.vhost")

	return fmt.Sprintf("amqp://%s:%s@%s:%d/%s", amqpUser, amqpPwd, amqpHost, amqpPort, amqpVHost)
}

func (r *vpr) AMQPConfig() (*framework.AMQPConfig, error) {
	config := &framework.AMQPConfig{}

	err := r.UnmarshalKey("amqp", config)
	if err != nil {
		return nil, err
	}

	return config, nil
}

func (r *vpr) DataStore() (*framework.DatastoreConfig, error) {
	dc := &framework.DatastoreConfig{}

	err := r.UnmarshalKey("datastore", dc)
	if err != nil {
		return nil, err
	}

	return dc, nil
}

func (r *vpr) Executor() (*framework.ExecutorConfig, error) {
	ec := &framework.ExecutorConfig{}

	err := r.UnmarshalKey("executor", ec)
	if err != nil {
		return nil, err
	}

	return ec, nil
}

// GetString uses Get because recursion
func (r *vpr) GetString(s string) string {
	ret, _ := r.Get(s).(string)

	return ret
}

// GetInt uses Get because same recursion
func (r *vpr) GetInt(s string) int {
	ret, _ := r.Get(s).(int)

	return ret
}

func (r *vpr) Endpoint(key string) (*framework.Endpoint, error) {
	ep := &framework.Endpoint{}

	err := r.UnmarshalKey(key, ep)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load key "+key)
	}

	return ep, nil
}
