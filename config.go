package sortedset

import (
	"fmt"

	"github.com/npillmayer/schuko"
)

const (
	// DefaultMaxBucketSize is the bucket size limit used by DefaultConfiguration.
	DefaultMaxBucketSize = 200
	// DefaultInitialSetCapacity is the bucket capacity hint used by DefaultConfiguration.
	DefaultInitialSetCapacity = 0
)

// Configuration keys read by ConfigurationFrom.
const (
	KeyMaxBucketSize       = "sortedset.max_bucket_size"
	KeyInitialItemCapacity = "sortedset.initial_item_capacity"
)

// Configuration holds the tuning parameters of a set. It is immutable once a set
// has been created from it.
type Configuration struct {
	// MaxBucketSize configures how large a bucket may grow before it is split.
	// A bucket is split as soon as it reaches this size, so buckets in a set
	// hold fewer than MaxBucketSize values. With a maximum of 1 every insertion
	// splits, and buckets hold at most one value.
	MaxBucketSize int
	// InitialSetCapacity pre-allocates room for this many buckets. It is a hint
	// only and no bound. NewConfiguration derives it from an item count, so it
	// counts buckets, not values.
	InitialSetCapacity int
}

// DefaultConfiguration returns a configuration with a maximum bucket size of 200.
func DefaultConfiguration() Configuration {
	return Configuration{
		MaxBucketSize:      DefaultMaxBucketSize,
		InitialSetCapacity: DefaultInitialSetCapacity,
	}
}

// WithMaxBucketSize returns the default configuration with a different maximum
// bucket size.
func WithMaxBucketSize(n int) Configuration {
	cfg := DefaultConfiguration()
	cfg.MaxBucketSize = n
	return cfg
}

// NewConfiguration derives a configuration from an expected number of items.
// The set capacity hint is calculated to hold initialItemCapacity items in
// buckets of maxBucketSize.
//
// A non-positive maxBucketSize is a contract violation and will panic.
func NewConfiguration(initialItemCapacity, maxBucketSize int) Configuration {
	mustBePositive(maxBucketSize)
	return Configuration{
		MaxBucketSize:      maxBucketSize,
		InitialSetCapacity: max(initialItemCapacity, 0)/maxBucketSize + 1,
	}
}

// ConfigurationFrom reads a configuration from an application configuration.
// Keys not set in conf fall back to DefaultConfiguration.
func ConfigurationFrom(conf schuko.Configuration) (Configuration, error) {
	if conf == nil {
		return DefaultConfiguration(), nil
	}
	maxBucketSize := DefaultMaxBucketSize
	if conf.IsSet(KeyMaxBucketSize) {
		maxBucketSize = conf.GetInt(KeyMaxBucketSize)
	}
	if maxBucketSize <= 0 {
		return Configuration{}, fmt.Errorf("%w: %s must be > 0, is %d",
			ErrInvalidConfig, KeyMaxBucketSize, maxBucketSize)
	}
	itemCapacity := 0
	if conf.IsSet(KeyInitialItemCapacity) {
		itemCapacity = conf.GetInt(KeyInitialItemCapacity)
	}
	cfg := NewConfiguration(itemCapacity, maxBucketSize)
	tracer().Debugf("configuration: max bucket size = %d, set capacity = %d",
		cfg.MaxBucketSize, cfg.InitialSetCapacity)
	return cfg, nil
}

func (cfg Configuration) normalized() Configuration {
	if cfg.InitialSetCapacity < 0 {
		cfg.InitialSetCapacity = 0
	}
	return cfg
}

func mustBePositive(maxBucketSize int) {
	if maxBucketSize <= 0 {
		tracer().Errorf("sortedset: max_bucket_size must be > 0, is %d", maxBucketSize)
		panic(fmt.Errorf("%w: max_bucket_size must be > 0", ErrInvalidConfig))
	}
}
