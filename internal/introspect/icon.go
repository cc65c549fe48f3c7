package introspect

import (
	"context"
	"errors"

	"github.com/leonhh/applist/internal/icon"
)

var errUnresolved = errors.New("package not resolvable")

// AppIcon returns the base64 PNG icon of a package scaled so its larger side
// is maxSize (the default size when maxSize <= 0). The first rendered icon of
// a package is cached and returned for every later call.
func (i *Introspector) AppIcon(ctx context.Context, name string, maxSize int) (encoded string, ok bool) {
	defer func() {
		i.absorb("getAppIcon", name, recover(), func() { encoded, ok = "", false })
	}()

	if cached, hit := i.icons.Get(name); hit {
		return cached, true
	}
	if maxSize <= 0 {
		maxSize = i.iconSize
	}

	v, err, _ := i.renders.Do(name, func() (any, error) {
		if cached, hit := i.icons.Get(name); hit {
			return cached, nil
		}

		entry := i.resolve(ctx, name)
		if entry == nil || entry.Application == nil {
			return "", errUnresolved
		}

		d, err := i.registry.LoadIcon(ctx, entry.Application)
		if err != nil {
			return "", err
		}

		rendered, err := icon.Render(d, maxSize)
		if err != nil {
			return "", err
		}
		return i.icons.SetIfAbsent(name, rendered), nil
	})
	if err != nil {
		if !errors.Is(err, errUnresolved) {
			i.log.WithError(err).Errorf("Error getting app icon for %s", name)
		}
		return "", false
	}

	return v.(string), true
}
