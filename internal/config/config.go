package config

// Config holds the analyzer defaults that an optional .symld.kdl file
// can pre-set. Explicit command-line flags override every field here.
type Config struct {
	Scanner Scanner
	Link    Link
	Output  Output
}

type Scanner struct {
	Lenient bool // upcase lowercase type codes, accept '?' imports
}

type Link struct {
	WarnUndefined     bool   // warn for imports no object defines
	AppSeed           string // entry symbol whose definition site seeds Application
	CheckMultipleDefs bool   // run the name-clash pass over both sets
}

type Output struct {
	Quiet   bool
	Verbose bool
	LogFile string // redirect warnings and trace output here
}

// Default returns the built-in configuration used when no .symld.kdl
// file is present.
func Default() *Config {
	return &Config{}
}

// Load reads configuration from path. A missing file is not an error:
// the defaults are returned. An unreadable or malformed file is.
func Load(path string) (*Config, error) {
	cfg, err := LoadKDL(path)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return Default(), nil
	}
	return cfg, nil
}
