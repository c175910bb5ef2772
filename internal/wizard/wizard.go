// Package wizard scaffolds a new mini app project: it renders the .env
// files from the collected answers and copies the client template files.
// Prompting lives in the CLI; this package only writes files.
package wizard

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"text/template"

	"github.com/collabland/discord-miniapp-framework/internal/config"
)

//go:embed templates
var templates embed.FS

// Answers is the configuration collected from the user.
type Answers struct {
	AppName      string
	ClientID     string
	ClientSecret string
	ServerPort   int
	ClientPort   int
	Environment  string
}

func (a *Answers) applyDefaults() {
	if a.AppName == "" {
		a.AppName = "Mini App"
	}
	if a.ServerPort == 0 {
		a.ServerPort = 3001
	}
	if a.ClientPort == 0 {
		a.ClientPort = 3000
	}
	if a.Environment == "" {
		a.Environment = config.EnvDevelopment
	}
}

type Wizard struct {
	// Dir is the project directory to scaffold into.
	Dir string
	// Force overwrites files that already exist.
	Force bool
}

func New(dir string, force bool) *Wizard {
	return &Wizard{
		Dir:   dir,
		Force: force,
	}
}

// Scaffold writes the project files and returns the paths it wrote.
func (w *Wizard) Scaffold(answers Answers) ([]string, error) {
	answers.applyDefaults()

	if answers.ClientID == "" {
		return nil, fmt.Errorf("client ID cannot be empty")
	}

	if answers.ClientSecret == "" {
		return nil, fmt.Errorf("client secret cannot be empty")
	}

	files := []struct {
		template string
		path     string
		rendered bool
		mode     os.FileMode
	}{
		// .env holds the secret, keep it private
		{template: "templates/env.tmpl", path: ".env", rendered: true, mode: 0o600},
		{template: "templates/client-env.tmpl", path: filepath.Join("client", ".env"), rendered: true, mode: 0o644},
		{template: "templates/gitignore.tmpl", path: ".gitignore", rendered: false, mode: 0o644},
		{template: "templates/client/index.html", path: filepath.Join("client", "index.html"), rendered: false, mode: 0o644},
	}

	written := make([]string, 0, len(files))

	for _, file := range files {
		target := filepath.Join(w.Dir, file.path)

		if !w.Force {
			if _, err := os.Stat(target); err == nil {
				return written, fmt.Errorf("%s already exists, re-run with force to overwrite", target)
			}
		}

		var contents []byte
		var err error

		if file.rendered {
			contents, err = w.render(file.template, answers)
		} else {
			contents, err = fs.ReadFile(templates, file.template)
		}

		if err != nil {
			return written, fmt.Errorf("failed to prepare %s: %w", file.path, err)
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return written, fmt.Errorf("failed to create directory for %s: %w", file.path, err)
		}

		if err := os.WriteFile(target, contents, file.mode); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", file.path, err)
		}

		written = append(written, target)
	}

	return written, nil
}

func (w *Wizard) render(name string, answers Answers) ([]byte, error) {
	tmpl, err := template.ParseFS(templates, name)

	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	if err := tmpl.Execute(&buf, answers); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
