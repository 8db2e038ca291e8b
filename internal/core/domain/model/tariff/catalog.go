package tariff

import (
	"sort"
	"strings"
	"sync"

	"shipping/internal/pkg/errs"
)

// Catalog resolves tariff names to profiles.
//
// The built-in vehicle profiles are always present; profiles loaded from
// persistence override them by name and add generic named tariffs. The catalog
// is read on every quote and replaced by the refresh job, so access is guarded
// by a RWMutex. Profiles themselves are immutable.
type Catalog struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
}

// NewCatalog creates a catalog holding the built-in profiles plus the given ones.
func NewCatalog(profiles ...*Profile) *Catalog {
	c := &Catalog{}
	c.Replace(profiles)
	return c
}

// Resolve returns the profile registered under name, which is either a vehicle
// class name ("car") or a generic tariff name. Matching is case-insensitive.
//
// Returns:
//   - *Profile: the matching profile
//   - error: ObjectNotFoundError when no profile has that name
func (c *Catalog) Resolve(name string) (*Profile, error) {
	key := strings.ToLower(strings.TrimSpace(name))

	c.mu.RLock()
	defer c.mu.RUnlock()

	profile, ok := c.profiles[key]
	if !ok {
		return nil, errs.NewObjectNotFoundError("tariff", name)
	}
	return profile, nil
}

// Replace swaps the catalog contents for the built-ins overlaid with profiles.
// Invalid (zero value) profiles are skipped.
func (c *Catalog) Replace(profiles []*Profile) {
	next := make(map[string]*Profile, len(profiles)+3)
	for _, p := range BuiltinProfiles() {
		next[p.Name()] = p
	}
	for _, p := range profiles {
		if p.Validate() != nil {
			continue
		}
		next[p.Name()] = p
	}

	c.mu.Lock()
	c.profiles = next
	c.mu.Unlock()
}

// Profiles returns all profiles sorted by name.
func (c *Catalog) Profiles() []*Profile {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]*Profile, 0, len(c.profiles))
	for _, p := range c.profiles {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result
}
