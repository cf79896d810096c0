// Package registry resolves language names, aliases and file extensions to
// lexable language descriptions.
package registry

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/agenthands/pylex/pkg/lexer"
)

// ErrUnknownLanguage is returned when no registered language matches a
// lookup.
var ErrUnknownLanguage = fmt.Errorf("registry: unknown language")

// Language describes a language the scanner can process.
type Language struct {
	Name        string
	Aliases     []string
	Extensions  []string
	Keywords    []string
	LineComment string
}

// Registry maps names, aliases and extensions to languages. The zero value
// is empty; New returns one with Python registered.
type Registry struct {
	byName map[string]*Language
	byExt  map[string]*Language
}

// New returns a registry with the built-in languages registered.
func New() *Registry {
	r := &Registry{
		byName: make(map[string]*Language),
		byExt:  make(map[string]*Language),
	}
	r.Add(&Language{
		Name:        "python",
		Aliases:     []string{"py", "python3"},
		Extensions:  []string{".py", ".pyi", ".pyw"},
		Keywords:    lexer.Keywords(),
		LineComment: "#",
	})
	return r
}

// Add registers a language under its name, aliases and extensions.
// Later registrations win on collision.
func (r *Registry) Add(lang *Language) {
	r.byName[strings.ToLower(lang.Name)] = lang
	for _, alias := range lang.Aliases {
		alias = strings.TrimSpace(strings.ToLower(alias))
		if alias != "" {
			r.byName[alias] = lang
		}
	}
	for _, ext := range lang.Extensions {
		ext = strings.ToLower(ext)
		if ext != "" {
			r.byExt[ext] = lang
		}
	}
}

// Lookup resolves a language by name or alias, case-insensitively.
func (r *Registry) Lookup(name string) (*Language, error) {
	if lang, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return lang, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, name)
}

// LookupPath resolves a language from a file path by extension, falling
// back to the file stem for extensionless names like "Makefile".
func (r *Registry) LookupPath(path string) (*Language, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := r.byExt[ext]; ok {
		return lang, nil
	}
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	if lang, ok := r.byName[strings.ToLower(stem)]; ok {
		return lang, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, path)
}

// aliasFile is the YAML shape of a user alias map: language name to extra
// aliases.
type aliasFile struct {
	Languages map[string][]string `yaml:"languages"`
}

// LoadAliases reads a YAML alias map and registers the extra aliases on
// already-known languages. Unknown names are reported, not skipped, so a
// typo in the file surfaces immediately.
func (r *Registry) LoadAliases(reader io.Reader) error {
	var file aliasFile
	if err := yaml.NewDecoder(reader).Decode(&file); err != nil {
		return fmt.Errorf("registry: decode aliases: %w", err)
	}
	for name, aliases := range file.Languages {
		lang, err := r.Lookup(name)
		if err != nil {
			return err
		}
		for _, alias := range aliases {
			alias = strings.TrimSpace(strings.ToLower(alias))
			if alias == "" {
				continue
			}
			if strings.HasPrefix(alias, ".") {
				r.byExt[alias] = lang
			} else {
				r.byName[alias] = lang
			}
		}
	}
	return nil
}
