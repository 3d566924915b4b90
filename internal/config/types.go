package config

import "encoding/json"

// UserConfig is the on-disk shape of the user config file.
type UserConfig struct {
	MCPServers map[string]ServerEntry `json:"mcpServers"`
}

// NewUserConfig returns an empty config with an initialised server map.
func NewUserConfig() *UserConfig {
	return &UserConfig{MCPServers: make(map[string]ServerEntry)}
}

// ServerEntry is a server object as written in the user config or the catalog.
//
// Optional scalar fields are pointers and optional collections are nil when the
// key was absent, so that an entry overriding a catalog entry only replaces
// the fields it actually spells out.
type ServerEntry struct {
	PackageName string            `json:"package_name,omitempty"`
	Command     *string           `json:"command,omitempty"`
	Args        []string          `json:"args,omitempty"`
	Env         map[string]string `json:"env,omitempty"`
	Description *string           `json:"description,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	RepoURL     *string           `json:"repo_url,omitempty"`
	SetupScript *string           `json:"setup_script,omitempty"`
	Cwd         *string           `json:"cwd,omitempty"`

	// Extra holds keys this version does not know about, written back unchanged.
	Extra map[string]json.RawMessage `json:"-"`
}

// knownEntryKeys are the JSON keys mapped onto ServerEntry fields.
var knownEntryKeys = []string{
	"package_name", "command", "args", "env", "description", "tags", "repo_url", "setup_script", "cwd",
}

// serverEntryJSON is the wire form of ServerEntry. Collections are pointers so
// that a key present with an empty value is written back as [] or {}.
type serverEntryJSON struct {
	PackageName string             `json:"package_name,omitempty"`
	Command     *string            `json:"command,omitempty"`
	Args        *[]string          `json:"args,omitempty"`
	Env         *map[string]string `json:"env,omitempty"`
	Description *string            `json:"description,omitempty"`
	Tags        *[]string          `json:"tags,omitempty"`
	RepoURL     *string            `json:"repo_url,omitempty"`
	SetupScript *string            `json:"setup_script,omitempty"`
	Cwd         *string            `json:"cwd,omitempty"`
}

// UnmarshalJSON decodes an entry, remembering which collections were present
// and keeping unknown keys in Extra.
func (e *ServerEntry) UnmarshalJSON(data []byte) error {
	var wire serverEntryJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*e = ServerEntry{
		PackageName: wire.PackageName,
		Command:     wire.Command,
		Description: wire.Description,
		RepoURL:     wire.RepoURL,
		SetupScript: wire.SetupScript,
		Cwd:         wire.Cwd,
	}
	if wire.Args != nil {
		e.Args = *wire.Args
	}
	if wire.Env != nil {
		e.Env = *wire.Env
	}
	if wire.Tags != nil {
		e.Tags = *wire.Tags
	}

	for _, key := range knownEntryKeys {
		delete(raw, key)
	}
	if len(raw) > 0 {
		e.Extra = raw
	}
	return nil
}

// MarshalJSON writes the known fields in declaration order followed by Extra.
// A nil collection is omitted; an empty one is written as [] or {}.
func (e ServerEntry) MarshalJSON() ([]byte, error) {
	wire := serverEntryJSON{
		PackageName: e.PackageName,
		Command:     e.Command,
		Description: e.Description,
		RepoURL:     e.RepoURL,
		SetupScript: e.SetupScript,
		Cwd:         e.Cwd,
	}
	if e.Args != nil {
		wire.Args = &e.Args
	}
	if e.Env != nil {
		wire.Env = &e.Env
	}
	if e.Tags != nil {
		wire.Tags = &e.Tags
	}

	data, err := json.Marshal(wire)
	if err != nil {
		return nil, err
	}
	if len(e.Extra) == 0 {
		return data, nil
	}

	extra, err := json.Marshal(e.Extra)
	if err != nil {
		return nil, err
	}
	// Both are JSON objects; join their members.
	if len(data) == 2 {
		return extra, nil
	}
	out := make([]byte, 0, len(data)+len(extra))
	out = append(out, data[:len(data)-1]...)
	out = append(out, ',')
	out = append(out, extra[1:]...)
	return out, nil
}

// IsSelfContained reports whether the entry can be launched without a catalog entry.
func (e ServerEntry) IsSelfContained() bool {
	return e.Command != nil && *e.Command != ""
}

// Override returns a copy of e where every field present in over replaces e's value.
// Env is replaced as a whole, not merged key by key.
func (e ServerEntry) Override(over ServerEntry) ServerEntry {
	result := e.clone()

	if over.PackageName != "" {
		result.PackageName = over.PackageName
	}
	if over.Command != nil {
		result.Command = stringPtr(*over.Command)
	}
	if over.Args != nil {
		result.Args = copyStrings(over.Args)
	}
	if over.Env != nil {
		result.Env = copyEnv(over.Env)
	}
	if over.Description != nil {
		result.Description = stringPtr(*over.Description)
	}
	if over.Tags != nil {
		result.Tags = copyStrings(over.Tags)
	}
	if over.RepoURL != nil {
		result.RepoURL = stringPtr(*over.RepoURL)
	}
	if over.SetupScript != nil {
		result.SetupScript = stringPtr(*over.SetupScript)
	}
	if over.Cwd != nil {
		result.Cwd = stringPtr(*over.Cwd)
	}
	for k, v := range over.Extra {
		if result.Extra == nil {
			result.Extra = make(map[string]json.RawMessage)
		}
		result.Extra[k] = append(json.RawMessage(nil), v...)
	}

	return result
}

// Resolve flattens the entry into a ServerConfig. defaultPackageName is used
// when the entry does not name its package.
func (e ServerEntry) Resolve(defaultPackageName string) ServerConfig {
	cfg := ServerConfig{
		PackageName: e.PackageName,
		Command:     deref(e.Command),
		Args:        copyStrings(e.Args),
		Env:         copyEnv(e.Env),
		Description: deref(e.Description),
		Tags:        copyStrings(e.Tags),
		RepoURL:     deref(e.RepoURL),
		SetupScript: deref(e.SetupScript),
		Cwd:         deref(e.Cwd),
	}
	if cfg.PackageName == "" {
		cfg.PackageName = defaultPackageName
	}
	if cfg.Args == nil {
		cfg.Args = []string{}
	}
	if cfg.Env == nil {
		cfg.Env = map[string]string{}
	}
	return cfg
}

func (e ServerEntry) clone() ServerEntry {
	c := e
	if e.Command != nil {
		c.Command = stringPtr(*e.Command)
	}
	if e.Description != nil {
		c.Description = stringPtr(*e.Description)
	}
	if e.RepoURL != nil {
		c.RepoURL = stringPtr(*e.RepoURL)
	}
	if e.SetupScript != nil {
		c.SetupScript = stringPtr(*e.SetupScript)
	}
	if e.Cwd != nil {
		c.Cwd = stringPtr(*e.Cwd)
	}
	c.Args = copyStrings(e.Args)
	c.Tags = copyStrings(e.Tags)
	c.Env = copyEnv(e.Env)
	if e.Extra != nil {
		c.Extra = make(map[string]json.RawMessage, len(e.Extra))
		for k, v := range e.Extra {
			c.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return c
}

// ServerConfig is the resolved, ready-to-use configuration of one named server.
// Cwd stays empty until a repository has been cloned for the record or the
// user config sets it explicitly.
type ServerConfig struct {
	PackageName string            `json:"package_name" yaml:"package_name"`
	Command     string            `json:"command" yaml:"command"`
	Args        []string          `json:"args" yaml:"args"`
	Env         map[string]string `json:"env" yaml:"env"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string          `json:"tags,omitempty" yaml:"tags,omitempty"`
	Cwd         string            `json:"cwd,omitempty" yaml:"cwd,omitempty"`
	RepoURL     string            `json:"repo_url,omitempty" yaml:"repo_url,omitempty"`
	SetupScript string            `json:"setup_script,omitempty" yaml:"setup_script,omitempty"`
}

// NeedsSetup reports whether the record declares a repository or a setup script.
func (c ServerConfig) NeedsSetup() bool {
	return c.RepoURL != "" || c.SetupScript != ""
}

// Clone returns a deep copy of c.
func (c ServerConfig) Clone() ServerConfig {
	out := c
	out.Args = copyStrings(c.Args)
	out.Tags = copyStrings(c.Tags)
	out.Env = copyEnv(c.Env)
	return out
}

// StringPtr returns a pointer to s, for building ServerEntry literals.
func StringPtr(s string) *string {
	return stringPtr(s)
}

func stringPtr(s string) *string {
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func copyEnv(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
