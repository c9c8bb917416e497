package region

import "time"

// Default values of a new Config
const (
	DefaultInitialCapacity  int32   = 16
	DefaultLoadFactor       float32 = 0.75
	DefaultConcurrencyLevel int32   = 16
)

// Config is the live, mutable region configuration used by callers to describe
// a region to create. It may hold listeners which cannot be serialized, so it is
// never sent over the wire. Messages carry a Snapshot of it instead.
//
// Usage:
//
//	conf := region.NewConfig().
//		SetScope(region.ScopeDistributedAck).
//		SetDataPolicy(region.DataPolicyReplicate).
//		AddListener(myListener)
//
// Thread-safety: A Config must not be modified concurrently.
type Config struct {
	scope             Scope
	dataPolicy        DataPolicy
	keyConstraint     string
	valueConstraint   string
	initialCapacity   int32
	loadFactor        float32
	concurrencyLevel  int32
	statisticsEnabled bool
	entryTimeToLive   time.Duration
	entryIdleTimeout  time.Duration
	listeners         []Listener
}

// NewConfig creates a Config with default values
func NewConfig() *Config {
	return &Config{
		scope:            ScopeDistributedNoAck,
		dataPolicy:       DataPolicyNormal,
		initialCapacity:  DefaultInitialCapacity,
		loadFactor:       DefaultLoadFactor,
		concurrencyLevel: DefaultConcurrencyLevel,
	}
}

// --------------------------------------------------------------------------
// Setters
// --------------------------------------------------------------------------

func (c *Config) SetScope(scope Scope) *Config {
	c.scope = scope
	return c
}

func (c *Config) SetDataPolicy(policy DataPolicy) *Config {
	c.dataPolicy = policy
	return c
}

func (c *Config) SetKeyConstraint(typeName string) *Config {
	c.keyConstraint = typeName
	return c
}

func (c *Config) SetValueConstraint(typeName string) *Config {
	c.valueConstraint = typeName
	return c
}

func (c *Config) SetInitialCapacity(capacity int32) *Config {
	c.initialCapacity = capacity
	return c
}

func (c *Config) SetLoadFactor(loadFactor float32) *Config {
	c.loadFactor = loadFactor
	return c
}

func (c *Config) SetConcurrencyLevel(level int32) *Config {
	c.concurrencyLevel = level
	return c
}

func (c *Config) SetStatisticsEnabled(enabled bool) *Config {
	c.statisticsEnabled = enabled
	return c
}

func (c *Config) SetEntryTimeToLive(ttl time.Duration) *Config {
	c.entryTimeToLive = ttl
	return c
}

func (c *Config) SetEntryIdleTimeout(idle time.Duration) *Config {
	c.entryIdleTimeout = idle
	return c
}

// AddListener attaches a listener. Only its name is kept in snapshots
func (c *Config) AddListener(l Listener) *Config {
	c.listeners = append(c.listeners, l)
	return c
}

// Listeners returns the attached listeners
func (c *Config) Listeners() []Listener {
	return c.listeners
}

// --------------------------------------------------------------------------
// Interface Methods (docu see region.IAttributes)
// --------------------------------------------------------------------------

func (c *Config) Scope() Scope                    { return c.scope }
func (c *Config) DataPolicy() DataPolicy          { return c.dataPolicy }
func (c *Config) KeyConstraint() string           { return c.keyConstraint }
func (c *Config) ValueConstraint() string         { return c.valueConstraint }
func (c *Config) InitialCapacity() int32          { return c.initialCapacity }
func (c *Config) LoadFactor() float32             { return c.loadFactor }
func (c *Config) ConcurrencyLevel() int32         { return c.concurrencyLevel }
func (c *Config) StatisticsEnabled() bool         { return c.statisticsEnabled }
func (c *Config) EntryTimeToLive() time.Duration  { return c.entryTimeToLive }
func (c *Config) EntryIdleTimeout() time.Duration { return c.entryIdleTimeout }

func (c *Config) ListenerNames() []string {
	if len(c.listeners) == 0 {
		return nil
	}
	names := make([]string, 0, len(c.listeners))
	for _, l := range c.listeners {
		names = append(names, l.Name())
	}
	return names
}
