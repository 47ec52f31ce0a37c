package install

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/danmuck/fixturectl/internal/tools"
	"github.com/rs/zerolog/log"
)

var (
	ErrCommandFailed = tools.ErrCommandFailed
	ErrInvalidTool   = errors.New("install: invalid tool")
	ErrFetchStatus   = errors.New("install: unexpected fetch status")
)

// CodeOwnershipPath is where the default ownership config lands, relative to
// the app dir.
const CodeOwnershipPath = "config/code_ownership.yml"

// Tool is one executable downloaded into the tools dir.
type Tool struct {
	Name string
	URL  string
}

// Config wires an Installer. Zero Runner and HTTPClient fall back to the
// host implementations.
type Config struct {
	ScaffoldCommand string
	ScaffoldArgs    []string
	CodeOwnership   string
	ToolsDir        string
	Runner          tools.CommandRunner
	HTTPClient      *http.Client
}

// Installer runs the external collaborators of a fixture run.
type Installer struct {
	scaffoldCommand string
	scaffoldArgs    []string
	codeOwnership   string
	toolsDir        string
	runner          tools.CommandRunner
	client          *http.Client
}

func NewInstaller(cfg Config) *Installer {
	runner := cfg.Runner
	if runner == nil {
		runner = tools.ExecRunner{}
	}
	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	toolsDir := strings.TrimSpace(cfg.ToolsDir)
	if toolsDir == "" {
		toolsDir = ".toolhidden"
	}
	return &Installer{
		scaffoldCommand: strings.TrimSpace(cfg.ScaffoldCommand),
		scaffoldArgs:    append([]string(nil), cfg.ScaffoldArgs...),
		codeOwnership:   cfg.CodeOwnership,
		toolsDir:        toolsDir,
		runner:          runner,
		client:          client,
	}
}

// Scaffold runs "<command> <args...> <appDir>" and then installs the
// default ownership config.
func (i *Installer) Scaffold(appDir string) error {
	if i.scaffoldCommand == "" {
		return fmt.Errorf("%w: no scaffold command configured", ErrCommandFailed)
	}
	if err := os.MkdirAll(filepath.Dir(appDir), 0o755); err != nil {
		return fmt.Errorf("create base dir: %w", err)
	}
	args := append(append([]string(nil), i.scaffoldArgs...), appDir)
	log.Info().Str("cmd", i.scaffoldCommand).Strs("args", args).Msg("scaffolding app")
	if err := tools.RunChecked(i.runner, i.scaffoldCommand, args...); err != nil {
		return fmt.Errorf("scaffold %s: %w", appDir, err)
	}
	return i.WriteCodeOwnership(appDir)
}

// WriteCodeOwnership writes config/code_ownership.yml, creating config/ when
// the skeleton did not.
func (i *Installer) WriteCodeOwnership(appDir string) error {
	p := filepath.Join(appDir, filepath.FromSlash(CodeOwnershipPath))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(p, []byte(i.codeOwnership), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", p, err)
	}
	return nil
}

// ToolPath is where tool lands under appDir.
func (i *Installer) ToolPath(appDir string, name string) string {
	return filepath.Join(appDir, i.toolsDir, name)
}

// FetchTools downloads every tool in order. The first failure stops the batch.
func (i *Installer) FetchTools(ctx context.Context, appDir string, list []Tool) error {
	for _, tool := range list {
		if _, err := i.FetchTool(ctx, appDir, tool); err != nil {
			return fmt.Errorf("tool=%q: %w", tool.Name, err)
		}
	}
	return nil
}

// FetchTool downloads one tool and marks it executable. It returns the
// installed path.
func (i *Installer) FetchTool(ctx context.Context, appDir string, tool Tool) (string, error) {
	dest, err := i.resolveToolPath(appDir, tool)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("create tools dir: %w", err)
	}

	log.Info().Str("tool", tool.Name).Str("url", tool.URL).Msg("fetching tool")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tool.URL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: url=%q: %v", ErrInvalidTool, tool.URL, err)
	}
	resp, err := i.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", tool.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: url=%q status=%d", ErrFetchStatus, tool.URL, resp.StatusCode)
	}

	if err := writeBody(dest, resp.Body); err != nil {
		return "", err
	}
	if err := tools.RunChecked(i.runner, "chmod", "+x", dest); err != nil {
		return "", fmt.Errorf("mark executable: %w", err)
	}
	return dest, nil
}

func (i *Installer) resolveToolPath(appDir string, tool Tool) (string, error) {
	name := strings.TrimSpace(tool.Name)
	if name == "" || name != tool.Name || name == "." || name == ".." {
		return "", fmt.Errorf("%w: name=%q", ErrInvalidTool, tool.Name)
	}
	if strings.TrimSpace(tool.URL) == "" {
		return "", fmt.Errorf("%w: name=%q missing url", ErrInvalidTool, tool.Name)
	}
	root := filepath.Join(appDir, i.toolsDir)
	dest := filepath.Clean(filepath.Join(root, name))
	if filepath.Dir(dest) != filepath.Clean(root) {
		return "", fmt.Errorf("%w: name=%q escapes tools dir", ErrInvalidTool, tool.Name)
	}
	return dest, nil
}

func writeBody(dest string, body io.Reader) error {
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", dest, err)
	}
	if _, err := io.Copy(out, body); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", dest, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dest, err)
	}
	return nil
}
