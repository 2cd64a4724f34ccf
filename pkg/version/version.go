// Package version parses glTF asset versions and checks them against the
// version this module reads.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Current is the asset version implemented by this module.
const Current = "2.0"

// Tool is the release of the gltfkit tools. Overridden at build time with
// -ldflags "-X github.com/gltfkit/gltfkit-go/pkg/version.Tool=...".
var Tool = "0.1.0-dev"

// AssetVersion represents a parsed "major.minor" asset version.
type AssetVersion struct {
	Major uint16
	Minor uint16
}

// Parse parses a "major.minor" version string.
func Parse(s string) (AssetVersion, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return AssetVersion{}, fmt.Errorf("invalid version %q: expected major.minor", s)
	}

	major, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil || parts[0] == "" {
		return AssetVersion{}, fmt.Errorf("invalid version %q: bad major component", s)
	}

	minor, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil || parts[1] == "" {
		return AssetVersion{}, fmt.Errorf("invalid version %q: bad minor component", s)
	}

	return AssetVersion{Major: uint16(major), Minor: uint16(minor)}, nil
}

// String returns the version as "major.minor".
func (v AssetVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compatible returns true if the other version has the same major version.
func (v AssetVersion) Compatible(other AssetVersion) bool {
	return v.Major == other.Major
}

// Less reports whether v orders before other.
func (v AssetVersion) Less(other AssetVersion) bool {
	if v.Major != other.Major {
		return v.Major < other.Major
	}
	return v.Minor < other.Minor
}

// Check reports whether an asset declaring version and minVersion can be
// read by a Current reader. The major version must match; when minVersion
// is present it must not exceed Current.
func Check(assetVersion, minVersion string) error {
	current, _ := Parse(Current)

	v, err := Parse(assetVersion)
	if err != nil {
		return err
	}
	if !current.Compatible(v) {
		return fmt.Errorf("asset version %s is not compatible with %s", v, current)
	}

	if minVersion == "" {
		return nil
	}
	mv, err := Parse(minVersion)
	if err != nil {
		return fmt.Errorf("minVersion: %w", err)
	}
	if current.Less(mv) {
		return fmt.Errorf("asset requires minVersion %s, reader implements %s", mv, current)
	}
	return nil
}
