package cache

import "lumina/internal/palette"

// Key joins a source identity with the option fingerprint. Identical sources
// extracted with different options get distinct entries. Invalidation goes
// through the recorded source, never through key prefixes.
func Key(source string, options palette.Options) string {
	return source + "|" + options.Fingerprint()
}
