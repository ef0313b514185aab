package config

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultPort      = 5001
	DefaultBodyLimit = "100K"
)

// Config is filled from the environment by field name:
//
//	MongodbUri      -> MONGODB_URI
//	MongodbDatabase -> MONGODB_DATABASE
//
// Zero values mean "not set"; defaults are applied after loading.
type Config struct {
	Port int

	// MongoDB configuration. An empty URI runs the server without persistence.
	MongodbUri      string
	MongodbDatabase string

	NodeEnv   string
	BodyLimit string

	// Deployment metadata (optional, may be empty locally)
	GitCommitSha string

	// Missing lists contract keys that were not present. Informational only.
	Missing []string `env:"-"`
}

// Load reads .env files (default ".env") into the process environment,
// then builds a Config from it. Variables already set in the process win
// over file values. A missing .env file is not an error.
//
// contract is the text of an .env.example file; its keys are the recognized
// settings and any that are absent end up in Config.Missing.
func Load(contract string, files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to parse env file %q: %w", f, err)
		}
	}

	envMap := make(map[string]string)
	for _, raw := range os.Environ() {
		pair := strings.SplitN(raw, "=", 2)
		if len(pair) == 2 {
			envMap[pair[0]] = pair[1]
		}
	}

	return FromMap(contract, envMap)
}

// FromMap builds a Config from an explicit key/value map.
func FromMap(contract string, envMap map[string]string) (Config, error) {
	cfg, err := loadStructFromEnvMap[Config](envMap)
	if err != nil {
		return Config{}, err
	}

	keys, err := readKeysFromExample(contract)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read embedded contract: %w", err)
	}
	cfg.Missing = missingKeys(keys, envMap)

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.BodyLimit == "" {
		c.BodyLimit = DefaultBodyLimit
	}
}

// Addr is the listen address for the configured port on all interfaces.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// -------------------- Presence check --------------------

func missingKeys(requiredKeys []string, envMap map[string]string) []string {
	missing := make([]string, 0)
	for _, k := range requiredKeys {
		if v, ok := envMap[k]; !ok || v == "" {
			missing = append(missing, k)
		}
	}
	sort.Strings(missing)
	return missing
}

// readKeysFromExample extracts variable names from .env.example text.
func readKeysFromExample(contract string) ([]string, error) {
	keys := make([]string, 0, 16)
	seen := make(map[string]bool, 16)

	sc := bufio.NewScanner(strings.NewReader(contract))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		i := strings.IndexByte(line, '=')
		if i <= 0 {
			continue
		}
		k := strings.TrimSpace(line[:i])
		if k != "" && !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// -------------------- Typed Config (no hardcoded env keys) --------------------

// loadStructFromEnvMap fills struct fields by converting field name -> SCREAMING_SNAKE env key.
// Fields tagged env:"-" are skipped.
func loadStructFromEnvMap[T any](envMap map[string]string) (T, error) {
	var out T
	val := reflect.ValueOf(&out).Elem()
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		sf := typ.Field(i)
		if sf.Tag.Get("env") == "-" {
			continue
		}
		fv := val.Field(i)

		envKey := camelToScreamingSnake(sf.Name)
		raw := strings.TrimSpace(envMap[envKey])

		switch fv.Kind() {
		case reflect.String:
			fv.SetString(raw)

		case reflect.Int:
			if raw == "" {
				continue
			}
			n, err := strconv.Atoi(raw)
			if err != nil {
				return out, fmt.Errorf("%s must be int (got %q)", envKey, raw)
			}
			fv.SetInt(int64(n))

		default:
			return out, fmt.Errorf("unsupported field type %s for %s", fv.Kind(), sf.Name)
		}
	}
	return out, nil
}

var camelBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)

func camelToScreamingSnake(s string) string {
	withUnderscores := camelBoundary.ReplaceAllString(s, `${1}_${2}`)
	return strings.ToUpper(withUnderscores)
}
