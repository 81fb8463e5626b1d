package cache

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key for a rendered flag.
	ArtifactKey(opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts lists everything that changes a rendered artifact's bytes.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Width       float64 `json:"width"`
	Palette     string  `json:"palette"`
	Scale       float64 `json:"scale,omitempty"`
	Supersample int     `json:"supersample,omitempty"`
	Grid        bool    `json:"grid,omitempty"`
}

// DefaultKeyer hashes the options into "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey generates a key for artifact caching.
func (DefaultKeyer) ArtifactKey(opts ArtifactKeyOpts) string {
	return hashKey("artifact", opts)
}
