package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("config: invalid")

// Tool is one executable fetched into the tools dir.
type Tool struct {
	Name string `toml:"name" validate:"required,excludesall=/\\"`
	URL  string `toml:"url" validate:"required,url"`
}

// Config holds every run-wide parameter. It is not modified after Load.
type Config struct {
	BaseDir         string   `validate:"required"`
	AppName         string   `validate:"required,excludesall=/\\"`
	NumPackages     int      `validate:"gte=0"`
	FilesPerDir     int      `validate:"gte=0"`
	CodeDirectories []string `validate:"min=1,dive,required,excludesall=/\\"`
	// Seed 0 means a fresh seed per run.
	Seed uint64

	ScaffoldCommand string `validate:"required_if=SkipScaffold false"`
	ScaffoldArgs    []string
	SkipScaffold    bool

	ToolsDir  string `validate:"required,excludesall=/\\"`
	Tools     []Tool `validate:"dive"`
	SkipTools bool

	Templates Templates
}

// AppDir is the root of the generated application.
func (c Config) AppDir() string {
	return filepath.Join(c.BaseDir, c.AppName)
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		BaseDir:         filepath.Join("tmp", "fixtures"),
		AppName:         "my_app",
		NumPackages:     100,
		FilesPerDir:     30,
		CodeDirectories: DefaultCodeDirectories(),
		ScaffoldCommand: "rails",
		ScaffoldArgs:    []string{"new"},
		ToolsDir:        ".toolhidden",
		Tools: []Tool{
			{Name: "codeowners", URL: "https://github.com/rubyatscale/codeowners-rs/releases/download/v0.2.1/codeowners"},
			{Name: "pks", URL: "https://github.com/rubyatscale/pks/releases/download/v0.2.23/pks"},
		},
		Templates: DefaultTemplates(),
	}
}

type fileConfig struct {
	BaseDir         string   `toml:"base_dir"`
	AppName         string   `toml:"app_name"`
	Packages        int      `toml:"packages"`
	FilesPerDir     int      `toml:"files_per_dir"`
	CodeDirectories []string `toml:"code_directories"`
	Seed            uint64   `toml:"seed"`
	Scaffold        struct {
		Command string   `toml:"command"`
		Args    []string `toml:"args"`
		Skip    bool     `toml:"skip"`
	} `toml:"scaffold"`
	Tools struct {
		Dir   string `toml:"dir"`
		Skip  bool   `toml:"skip"`
		Fetch []Tool `toml:"fetch"`
	} `toml:"tools"`
	Templates struct {
		CodeOwnership string `toml:"code_ownership"`
		BootstrapTeam string `toml:"bootstrap_team"`
		SourceBody    string `toml:"source_body"`
	} `toml:"templates"`
}

// Load reads path over Default. Only keys present in the file override.
// Template paths are resolved relative to the config file.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%w: unknown keys in %s: %v", ErrInvalidConfig, path, undecoded)
	}

	if meta.IsDefined("base_dir") {
		cfg.BaseDir = strings.TrimSpace(raw.BaseDir)
	}
	if meta.IsDefined("app_name") {
		cfg.AppName = strings.TrimSpace(raw.AppName)
	}
	if meta.IsDefined("packages") {
		cfg.NumPackages = raw.Packages
	}
	if meta.IsDefined("files_per_dir") {
		cfg.FilesPerDir = raw.FilesPerDir
	}
	if meta.IsDefined("code_directories") {
		cfg.CodeDirectories = normalizeList(raw.CodeDirectories)
	}
	if meta.IsDefined("seed") {
		cfg.Seed = raw.Seed
	}
	if meta.IsDefined("scaffold", "command") {
		cfg.ScaffoldCommand = strings.TrimSpace(raw.Scaffold.Command)
	}
	if meta.IsDefined("scaffold", "args") {
		cfg.ScaffoldArgs = normalizeList(raw.Scaffold.Args)
	}
	if meta.IsDefined("scaffold", "skip") {
		cfg.SkipScaffold = raw.Scaffold.Skip
	}
	if meta.IsDefined("tools", "dir") {
		cfg.ToolsDir = strings.TrimSpace(raw.Tools.Dir)
	}
	if meta.IsDefined("tools", "skip") {
		cfg.SkipTools = raw.Tools.Skip
	}
	if meta.IsDefined("tools", "fetch") {
		cfg.Tools = normalizeTools(raw.Tools.Fetch)
	}

	base := filepath.Dir(path)
	overrides := []struct {
		key    string
		path   string
		target *string
		yaml   bool
	}{
		{"code_ownership", raw.Templates.CodeOwnership, &cfg.Templates.CodeOwnership, true},
		{"bootstrap_team", raw.Templates.BootstrapTeam, &cfg.Templates.BootstrapTeam, true},
		{"source_body", raw.Templates.SourceBody, &cfg.Templates.SourceBody, false},
	}
	for _, o := range overrides {
		if !meta.IsDefined("templates", o.key) {
			continue
		}
		text, err := readTemplate(base, o.path, o.yaml)
		if err != nil {
			return Config{}, fmt.Errorf("templates.%s: %w", o.key, err)
		}
		*o.target = text
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and template shape.
func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if cfg.AppName == "." || cfg.AppName == ".." {
		return fmt.Errorf("%w: app_name %q", ErrInvalidConfig, cfg.AppName)
	}
	seen := make(map[string]struct{}, len(cfg.Tools))
	for i, tool := range cfg.Tools {
		if _, ok := seen[tool.Name]; ok {
			return fmt.Errorf("%w: tools[%d] duplicate name %q", ErrInvalidConfig, i, tool.Name)
		}
		seen[tool.Name] = struct{}{}
	}
	if err := checkYAML(cfg.Templates.CodeOwnership); err != nil {
		return fmt.Errorf("%w: code_ownership template: %v", ErrInvalidConfig, err)
	}
	if err := checkYAML(cfg.Templates.BootstrapTeam); err != nil {
		return fmt.Errorf("%w: bootstrap_team template: %v", ErrInvalidConfig, err)
	}
	return nil
}

func readTemplate(base, path string, isYAML bool) (string, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		return "", fmt.Errorf("%w: empty template path", ErrInvalidConfig)
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(base, p)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return "", err
	}
	if isYAML {
		if err := checkYAML(string(data)); err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrInvalidConfig, p, err)
		}
	}
	return string(data), nil
}

func checkYAML(text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.New("empty document")
	}
	var doc yaml.Node
	return yaml.Unmarshal([]byte(text), &doc)
}

func normalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func normalizeTools(in []Tool) []Tool {
	out := make([]Tool, 0, len(in))
	for _, t := range in {
		out = append(out, Tool{Name: strings.TrimSpace(t.Name), URL: strings.TrimSpace(t.URL)})
	}
	return out
}
