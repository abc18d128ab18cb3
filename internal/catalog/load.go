package catalog

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// CategoriesFile names the optional file that orders and names categories
const CategoriesFile = "categories.yaml"

// maxParallelReads bounds concurrent file reads during a load
const maxParallelReads = 8

//go:embed builtin/*.yaml
var builtinFS embed.FS

// CategoryDef is one entry of categories.yaml
type CategoryDef struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type categoriesDoc struct {
	Categories []CategoryDef `yaml:"categories"`
}

// LoadDir loads every entry file in dir
func LoadDir(ctx context.Context, dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog path %s is not a directory", dir)
	}
	return LoadFS(ctx, os.DirFS(dir), ".")
}

// Builtin returns the sample catalog compiled into the binary
func Builtin(ctx context.Context) (*Catalog, error) {
	return LoadFS(ctx, builtinFS, "builtin")
}

// LoadFS loads every *.yaml and *.yml entry in dir of fsys. Subdirectories
// are not descended into.
func LoadFS(ctx context.Context, fsys fs.FS, dir string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || e.Name() == CategoriesFile || !IsEntryFile(e.Name()) {
			continue
		}
		files = append(files, path.Join(dir, e.Name()))
	}

	algorithms := make([]*Algorithm, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelReads)
	for i, name := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			a, err := ReadEntry(fsys, name)
			if err != nil {
				return err
			}
			algorithms[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	defs, err := readCategories(fsys, path.Join(dir, CategoriesFile))
	if err != nil {
		return nil, err
	}

	return New(algorithms, defs)
}

// ReadEntry decodes a single entry file
func ReadEntry(fsys fs.FS, name string) (*Algorithm, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return DecodeEntry(name, data)
}

// DecodeEntry decodes and normalizes entry YAML. source is used in errors only.
func DecodeEntry(source string, data []byte) (*Algorithm, error) {
	var a Algorithm
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", source, err)
	}
	a.Source = source
	if err := a.normalize(); err != nil {
		return nil, fmt.Errorf("invalid entry %s: %w", source, err)
	}
	return &a, nil
}

func readCategories(fsys fs.FS, name string) ([]CategoryDef, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	var doc categoriesDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return doc.Categories, nil
}

// IsEntryFile reports whether a file name looks like a catalog entry
func IsEntryFile(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return (ext == ".yaml" || ext == ".yml") && path.Base(name) != CategoriesFile
}
