package theme

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

// DefaultCacheKey is the cache key the resolved palette is mirrored under.
const DefaultCacheKey = "colorPalette"

// Origin tells where a resolved palette came from.
type Origin string

const (
	// OriginSource means the palette was fetched from the source.
	OriginSource Origin = "source"
	// OriginCache means the source failed and the last mirrored palette was used.
	OriginCache Origin = "cache"
	// OriginDefault means nothing could be resolved and default styling stays in place.
	OriginDefault Origin = "default"
)

var resolutions = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Name: "theme_resolutions_total",
		Help: "Number of palette resolutions, differentiated by origin.",
	},
	[]string{"origin"},
)

// Source provides the currently active palette.
type Source interface {
	ActivePalette(ctx context.Context) (Palette, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (Palette, error)

// ActivePalette implements Source.
func (f SourceFunc) ActivePalette(ctx context.Context) (Palette, error) {
	return f(ctx)
}

// Cache is the subset of fiber.Storage the resolver uses.
// Get returns nil without error for unknown keys.
type Cache interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
}

// Resolution is the outcome of a Resolve call.
type Resolution struct {
	Palette   Palette    `json:"palette"`
	Variables []Variable `json:"variables"`
	Origin    Origin     `json:"origin"`
}

// CSS renders the resolved variables as a :root rule.
func (r Resolution) CSS() string {
	return CSS(r.Variables)
}

// InlineCSS renders only the variables that are safe to inline in a page.
func (r Resolution) InlineCSS() string {
	return CSS(InlineVariables(r.Palette))
}

// Resolver resolves the active palette: source first, then the cache, then default styling.
type Resolver struct {
	Source   Source
	Cache    Cache
	CacheKey string
}

// NewResolver creates a resolver mirroring into cache under DefaultCacheKey.
// cache may be nil.
func NewResolver(src Source, cache Cache) *Resolver {
	return &Resolver{
		Source:   src,
		Cache:    cache,
		CacheKey: DefaultCacheKey,
	}
}

// Resolve never fails. Source and cache errors are logged and the next fallback is tried.
func (r *Resolver) Resolve(ctx context.Context) Resolution {
	res := r.resolve(ctx)
	resolutions.WithLabelValues(string(res.Origin)).Inc()

	return res
}

func (r *Resolver) resolve(ctx context.Context) Resolution {
	if r.Source != nil {
		p, err := r.Source.ActivePalette(ctx)
		if err == nil {
			r.mirror(p)
			return Resolution{Palette: p, Variables: Variables(p), Origin: OriginSource}
		}

		log.Debug().Err(err).Msg("active palette not available, trying cache")
	}

	if p, ok := r.cached(); ok {
		return Resolution{Palette: p, Variables: Variables(p), Origin: OriginCache}
	}

	log.Debug().Msg("no palette cached, default styling is kept")

	return Resolution{Origin: OriginDefault}
}

func (r *Resolver) key() string {
	if r.CacheKey == "" {
		return DefaultCacheKey
	}

	return r.CacheKey
}

func (r *Resolver) mirror(p Palette) {
	if r.Cache == nil {
		return
	}

	data, err := json.Marshal(p)
	if err != nil {
		log.Warn().Err(err).Msg("can't encode palette for cache")
		return
	}

	if err = r.Cache.Set(r.key(), data, 0); err != nil {
		log.Warn().Err(errors.Wrap(err, "mirror palette")).Str("key", r.key()).Msg("palette cache write failed")
	}
}

func (r *Resolver) cached() (Palette, bool) {
	if r.Cache == nil {
		return Palette{}, false
	}

	data, err := r.Cache.Get(r.key())
	if err != nil {
		log.Warn().Err(err).Str("key", r.key()).Msg("palette cache read failed")
		return Palette{}, false
	}

	if len(data) == 0 {
		return Palette{}, false
	}

	var p Palette
	if err = json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("key", r.key()).Msg("cached palette is not valid json")
		return Palette{}, false
	}

	return p, !p.IsZero()
}
