package dsn

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is an optional sidecar connection-profile file: a named,
// checked-in alternative to hand-typing a full connection string,
// letting e.g. "dev" and "staging" profiles for the same endpoint live
// alongside each other without the URL's userinfo ending up in shell
// history or process listings.
type Profile struct {
	Endpoint string `yaml:"endpoint"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	Token    string `yaml:"token,omitempty"`
}

// profileFile is the on-disk shape: a map of profile name to Profile.
type profileFile map[string]Profile

// LoadProfile reads a YAML sidecar file of named connection profiles and
// resolves `name` into a DSN, folding the profile's username/password/token
// into the DSN as if they'd been present in the endpoint string's userinfo
// or a `?token=` flag.
func LoadProfile(path, name string) (*DSN, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dsn: reading profile file: %w", err)
	}

	var file profileFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("dsn: parsing profile file: %w", err)
	}

	profile, ok := file[name]
	if !ok {
		return nil, fmt.Errorf("dsn: no profile named %q in %s", name, path)
	}

	d, err := Parse(profile.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("dsn: profile %q: %w", name, err)
	}

	switch {
	case profile.Token != "":
		d.Auth.Kind = AuthToken
		d.Auth.Token = profile.Token
	case profile.Username != "":
		d.Auth.Kind = AuthRoot
		d.Auth.Username = profile.Username
		d.Auth.Password = profile.Password
	}

	return d, nil
}
