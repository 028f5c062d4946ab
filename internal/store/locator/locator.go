// Package locator turns a command-line location into a Store and a key.
//
// Supported forms:
//
//	gs://bucket/path/to/object
//	s3://bucket/path/to/object
//	redis://host:port/key
//	/local/path or relative/path
package locator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ziphuff/zmh/internal/stats"
	"github.com/ziphuff/zmh/internal/store"
	"github.com/ziphuff/zmh/internal/store/cachedstore"
	"github.com/ziphuff/zmh/internal/store/cachedstore/cachestrategy"
	"github.com/ziphuff/zmh/internal/store/cachedstore/cachestrategy/bigcache"
	"github.com/ziphuff/zmh/internal/store/cachedstore/cachestrategy/lru"
	"github.com/ziphuff/zmh/internal/store/cachedstore/memory"
	"github.com/ziphuff/zmh/internal/store/diskstore"
	"github.com/ziphuff/zmh/internal/store/gcsstore"
	"github.com/ziphuff/zmh/internal/store/redisstore"
	"github.com/ziphuff/zmh/internal/store/s3store"
)

// ErrInvalidLocation is returned for locations that cannot be parsed.
var ErrInvalidLocation = errors.New("locator: invalid location")

// Scheme identifies the backend a location refers to.
type Scheme string

const (
	SchemeFile  Scheme = "file"
	SchemeGCS   Scheme = "gs"
	SchemeS3    Scheme = "s3"
	SchemeRedis Scheme = "redis"
)

// Location is a parsed location.
type Location struct {
	Scheme Scheme

	// Root is the bucket, the redis address, or the local directory.
	Root string

	// Key names the object within Root.
	Key string
}

func (l Location) String() string {
	if l.Scheme == SchemeFile {
		return filepath.Join(l.Root, l.Key)
	}
	return string(l.Scheme) + "://" + l.Root + "/" + l.Key
}

// Parse parses raw into a Location.
func Parse(raw string) (Location, error) {
	if raw == "" {
		return Location{}, fmt.Errorf("%w: empty", ErrInvalidLocation)
	}

	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		abs, err := filepath.Abs(raw)
		if err != nil {
			return Location{}, fmt.Errorf("%w: %v", ErrInvalidLocation, err)
		}
		return Location{
			Scheme: SchemeFile,
			Root:   filepath.Dir(abs),
			Key:    filepath.Base(abs),
		}, nil
	}

	switch Scheme(scheme) {
	case SchemeGCS, SchemeS3, SchemeRedis:
	case SchemeFile:
		return Parse(rest)
	default:
		return Location{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidLocation, scheme)
	}

	root, key, _ := strings.Cut(rest, "/")
	if root == "" || key == "" || strings.HasSuffix(key, "/") {
		return Location{}, fmt.Errorf("%w: %q needs both a %s and an object key", ErrInvalidLocation, raw, rootName(Scheme(scheme)))
	}
	return Location{Scheme: Scheme(scheme), Root: root, Key: key}, nil
}

func rootName(s Scheme) string {
	if s == SchemeRedis {
		return "host:port"
	}
	return "bucket"
}

// Cache strategy names.
const (
	CacheLRU      = "lru"
	CacheBigcache = "bigcache"
)

// Config controls how a location is opened.
type Config struct {
	// CacheSize wraps the store in a read-through cache when positive. It
	// counts objects for the lru strategy and megabytes for bigcache.
	CacheSize int

	// CacheStrategy is CacheLRU (the default) or CacheBigcache.
	CacheStrategy string

	// Collector receives cache metrics. Optional.
	Collector stats.Collector

	// S3Region and S3Endpoint override the AWS defaults.
	S3Region   string
	S3Endpoint string
}

// Open opens the store that holds loc. The caller closes it.
func Open(ctx context.Context, loc Location, cfg Config) (store.Store, error) {
	s, err := openBackend(ctx, loc, cfg)
	if err != nil {
		return nil, err
	}
	cached, err := WithCache(s, cfg)
	if err != nil {
		s.Close()
		return nil, err
	}
	return cached, nil
}

// WithCache wraps s in the read-through cache described by cfg, or returns
// s unchanged when cfg.CacheSize is not positive.
func WithCache(s store.Store, cfg Config) (store.Store, error) {
	if cfg.CacheSize <= 0 {
		return s, nil
	}

	var strategy cachestrategy.Strategy
	var err error
	switch cfg.CacheStrategy {
	case "", CacheLRU:
		strategy, err = lru.New(cfg.CacheSize)
	case CacheBigcache:
		strategy, err = bigcache.New(bigcache.Config{HardMaxCacheSizeMB: cfg.CacheSize})
	default:
		return nil, fmt.Errorf("unknown cache strategy %q", cfg.CacheStrategy)
	}
	if err != nil {
		return nil, fmt.Errorf("creating cache: %w", err)
	}
	return cachedstore.New(s, memory.New(strategy, cfg.Collector)), nil
}

func openBackend(ctx context.Context, loc Location, cfg Config) (store.Store, error) {
	switch loc.Scheme {
	case SchemeFile:
		return diskstore.New(loc.Root)
	case SchemeGCS:
		return gcsstore.New(ctx, loc.Root)
	case SchemeS3:
		var opts []s3store.Option
		if cfg.S3Region != "" {
			opts = append(opts, s3store.WithRegion(cfg.S3Region))
		}
		if cfg.S3Endpoint != "" {
			opts = append(opts, s3store.WithEndpoint(cfg.S3Endpoint))
		}
		return s3store.New(ctx, loc.Root, opts...)
	case SchemeRedis:
		return redisstore.Dial(ctx, loc.Root)
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidLocation, loc.Scheme)
	}
}
