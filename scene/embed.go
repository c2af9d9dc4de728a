package scene

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Dir is the directory searched before the embedded files, relative to
// the working directory.
var Dir = "scene"

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

//go:embed *.yaml
var ScenesFS embed.FS

func Load(name string) ([]byte, error) {
	clean := cleanScenePath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return ScenesFS.ReadFile(clean)
}

// ScriptExists reports whether a script can be loaded from disk or the
// embedded files.
func ScriptExists(name string) bool {
	_, err := LoadScript(name)
	return err == nil
}

func cleanScenePath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, Dir+"/"); ok {
		return after
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)

	if after, ok := strings.CutPrefix(s, Dir+"/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}

	return fmt.Sprintf("scripts/%s", s)
}

func diskPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}
