package config

import (
	"strconv"

	agollo "github.com/apolloconfig/agollo/v4"
	apconf "github.com/apolloconfig/agollo/v4/env/config"
	"github.com/apolloconfig/agollo/v4/storage"
	"go.uber.org/zap"
)

// overrideFromApollo starts Apollo client and overrides config values if present.
// Returns a closer to stop the Apollo client.
func overrideFromApollo(cfg *Config, store *Store) (func(), error) {
	if cfg.Apollo.Addrs == "" || cfg.Apollo.AppID == "" {
		configLogger.Warn("apollo: missing APOLLO_ADDRS or APOLLO_APP_ID; skip")
		return nil, nil
	}

	ns := cfg.Apollo.Namespace
	if ns == "" {
		ns = "application"
	}

	appCfg := &apconf.AppConfig{
		AppID:              cfg.Apollo.AppID,
		Cluster:            cfg.Apollo.Cluster,
		NamespaceName:      ns,
		ApolloConfigServer: cfg.Apollo.Addrs, // 支持逗号分隔
		Secret:             cfg.Apollo.AccessKey,
	}

	client, err := agollo.StartWithConfig(func() (*apconf.AppConfig, error) { return appCfg, nil })
	if err != nil {
		return nil, err
	}

	applyApolloOverrides(client.GetConfigCache(ns), cfg)
	_ = store.UpdateValidated(cfg, map[string]bool{"apollo.init": true})

	client.AddChangeListener(&changeListener{ns: ns, client: client, store: store})

	// agollo v4 has no public Stop
	return func() {}, nil
}

// configCache is the subset of agollo's cache used for overrides.
type configCache interface {
	Get(key string) (interface{}, error)
}

type stringKey struct {
	key        string
	set        func(*Config, string)
	allowEmpty bool
}

type intKey struct {
	key string
	set func(*Config, int)
}

var apolloStringKeys = []stringKey{
	{key: "app.env", set: func(c *Config, v string) { c.AppEnv = v }},
	{key: "server.addr", set: func(c *Config, v string) { c.Server.Addr = v }},
	{key: "log.level", set: func(c *Config, v string) { c.Log.Level = v }},
	{key: "log.format", set: func(c *Config, v string) { c.Log.Format = v }},
	{key: "db.url", set: func(c *Config, v string) { c.DB.URL = v }},
	{key: "redis.addr", set: func(c *Config, v string) { c.Redis.Addr = v }},
	{key: "redis.password", set: func(c *Config, v string) { c.Redis.Password = v }, allowEmpty: true},
	{key: "mq.url", set: func(c *Config, v string) { c.MQ.URL = v }},
	{key: "es.addrs", set: func(c *Config, v string) { c.ES.Addrs = v }},
	{key: "es.username", set: func(c *Config, v string) { c.ES.Username = v }, allowEmpty: true},
	{key: "es.password", set: func(c *Config, v string) { c.ES.Password = v }, allowEmpty: true},
}

var apolloIntKeys = []intKey{
	{key: "db.max_open", set: func(c *Config, v int) { c.DB.MaxOpenConns = v }},
	{key: "db.max_idle", set: func(c *Config, v int) { c.DB.MaxIdleConns = v }},
	{key: "redis.db", set: func(c *Config, v int) { c.Redis.DB = v }},
	{key: "menu.cache_ttl_sec", set: func(c *Config, v int) { c.Menu.CacheTTLSec = v }},
	{key: "menu.recent_max", set: func(c *Config, v int) { c.Menu.RecentMax = v }},
}

func applyApolloOverrides(cache configCache, cfg *Config) {
	if cache == nil {
		return
	}
	for _, k := range apolloStringKeys {
		v, err := cache.Get(k.key)
		if err != nil {
			continue
		}
		if s, _ := v.(string); s != "" || k.allowEmpty {
			k.set(cfg, s)
		}
	}
	for _, k := range apolloIntKeys {
		v, err := cache.Get(k.key)
		if err != nil {
			continue
		}
		if s, _ := v.(string); s != "" {
			if n, err := strconv.Atoi(s); err == nil {
				k.set(cfg, n)
			}
		}
	}
}

type changeListener struct {
	ns     string
	client agollo.Client
	store  *Store
}

func (c *changeListener) OnChange(e *storage.ChangeEvent) {
	configLogger.Info("apollo change", zap.String("namespace", e.Namespace), zap.Int("changes", len(e.Changes)))
	next := cloneConfig(c.store.Get())
	applyApolloOverrides(c.client.GetConfigCache(c.ns), next)
	changed := map[string]bool{}
	for k := range e.Changes {
		changed[k] = true
	}
	_ = c.store.UpdateValidated(next, changed)
}

func (c *changeListener) OnNewNamespace(e *storage.NewNamespaceEvent) {
	configLogger.Info("apollo new namespace", zap.String("namespace", e.Namespace))
}

func (c *changeListener) OnDelete(e *storage.DeleteEvent) {
	configLogger.Info("apollo delete namespace", zap.String("namespace", e.Namespace))
}
