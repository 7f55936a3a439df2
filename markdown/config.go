package markdown

import "fmt"

// UnknownPolicy controls behavior for element names the serializer does not
// recognize.
type UnknownPolicy string

const (
	// UnknownSkip drops the element and records a warning.
	UnknownSkip UnknownPolicy = "skip"
	// UnknownError fails serialization on the first unknown element.
	UnknownError UnknownPolicy = "error"
)

// Config holds serializer options.
type Config struct {
	BulletMarker    rune          `json:"bulletMarker,omitempty"`
	UnknownElements UnknownPolicy `json:"unknownElements,omitempty"`
}

func (c Config) applyDefaults() Config {
	if c.BulletMarker == 0 {
		c.BulletMarker = '-'
	}
	if c.UnknownElements == "" {
		c.UnknownElements = UnknownSkip
	}
	return c
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	if c.BulletMarker != '-' && c.BulletMarker != '*' && c.BulletMarker != '+' {
		return fmt.Errorf("invalid bulletMarker %q: must be one of -, *, +", c.BulletMarker)
	}
	if c.UnknownElements != UnknownSkip && c.UnknownElements != UnknownError {
		return fmt.Errorf("invalid unknownElements policy %q", c.UnknownElements)
	}
	return nil
}
