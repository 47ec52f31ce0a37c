package config

import (
	"fmt"
	"os"
	"strings"
)

// Templates is the fixed text written into every fixture. Each field can be
// replaced from a file through the [templates] table.
type Templates struct {
	CodeOwnership string
	BootstrapTeam string
	SourceBody    string
}

// DefaultTemplates returns the built-in fixture text.
func DefaultTemplates() Templates {
	return Templates{
		CodeOwnership: codeOwnershipTemplate,
		BootstrapTeam: bootstrapTeamTemplate,
		SourceBody:    sourceBodyTemplate,
	}
}

// DefaultCodeDirectories is the a..z fan-out under app/services.
func DefaultCodeDirectories() []string {
	out := make([]string, 0, 26)
	for c := 'a'; c <= 'z'; c++ {
		out = append(out, string(c))
	}
	return out
}

// Template returns the starter file for kind. Only "fixture" exists today.
func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "fixture":
		return fixtureConfigTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

// WriteTemplate writes the starter config to path. Existing files are kept
// unless overwrite is set.
func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o644)
}

const fixtureConfigTemplate = `base_dir = "./tmp/fixtures"
app_name = "my_app"
packages = 100
files_per_dir = 30
# 0 picks a fresh seed per run; any other value reproduces the same tree.
seed = 0

[scaffold]
command = "rails"
args = ["new"]
skip = false

[tools]
dir = ".toolhidden"
skip = false

[[tools.fetch]]
name = "codeowners"
url = "https://github.com/rubyatscale/codeowners-rs/releases/download/v0.2.1/codeowners"

[[tools.fetch]]
name = "pks"
url = "https://github.com/rubyatscale/pks/releases/download/v0.2.23/pks"

[templates]
# code_ownership = "templates/code_ownership.yml"
# bootstrap_team = "templates/infra.yml"
# source_body = "templates/body.rb"
`

const codeOwnershipTemplate = `---
owned_globs:
  - "{app,components,config,frontend,lib,packs,spec}/**/*.{rb,rake,js,jsx,ts,tsx,json,yml}"
unowned_globs:
  - config/code_ownership.yml
javascript_package_paths:
  - javascript/packages/**
vendored_gems_path: gems
team_file_glob:
  - config/teams/**/*.yml
`

const bootstrapTeamTemplate = `name: infra
github:
  team: '@infra'
  members:
    - infra member
owned_globs:
  - app/**
  - config/application.rb
  - config/boot.rb
  - config/cable.yml
  - config/database.yml
  - config/environment.rb
  - config/environments/development.rb
  - config/environments/production.rb
  - config/environments/test.rb
  - config/importmap.rb
  - config/initializers/assets.rb
  - config/initializers/content_security_policy.rb
  - config/initializers/filter_parameter_logging.rb
  - config/initializers/inflections.rb
  - config/initializers/permissions_policy.rb
  - config/locales/en.yml
  - config/puma.rb
  - config/routes.rb
  - config/storage.yml
  - config/cache.yml
  - config/deploy.yml
  - config/queue.yml
  - config/recurring.yml
`

const sourceBodyTemplate = `  def method_1
    puts 'hello'
  end

  def method_2
    puts 'hello 2'
  end

  def method_3
    puts 'met'
  end

  def method_4
    [1, 2, 3].map { |n| n * 2 }.sum
  end

  def method_5
    { owner: nil, reviewed: false }.compact
  end`
