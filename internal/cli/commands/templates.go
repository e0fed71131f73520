package commands

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

//go:embed templates
var templateFS embed.FS

// templateFile is one starter file and where it is installed.
type templateFile struct {
	Name   string
	Target string
}

// starterFiles maps each embedded template to its destination.
func starterFiles(scriptPath, configFile string) []templateFile {
	return []templateFile{
		{Name: "leapedit.yaml", Target: configFile},
		{Name: "init.star", Target: scriptPath},
	}
}

// copyTemplate writes one embedded template to target. Existing files are
// kept unless force is set. It reports whether the file was written.
func copyTemplate(name, target string, force bool) (bool, error) {
	if !force {
		if _, err := os.Stat(target); err == nil {
			return false, nil
		}
	}

	content, err := fs.ReadFile(templateFS, path.Join("templates", name))
	if err != nil {
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0750); err != nil {
		return false, err
	}
	if err := os.WriteFile(target, content, 0600); err != nil {
		return false, err
	}
	return true, nil
}
