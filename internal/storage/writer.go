package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/luismrgarcia/zigbee2mqtt/internal/docgen"
)

// DocumentWriter handles writing generated documents into the output directory
type DocumentWriter struct {
	outputDir string
}

// WriteResult represents the outcome of writing a single document
type WriteResult struct {
	Name    string
	Path    string
	Changed bool
}

// NewDocumentWriter creates a new writer for outputDir
func NewDocumentWriter(outputDir string) *DocumentWriter {
	return &DocumentWriter{
		outputDir: outputDir,
	}
}

// Dir returns the output directory
func (w *DocumentWriter) Dir() string {
	return w.outputDir
}

// GetDocumentPath returns the full path of a document
func (w *DocumentWriter) GetDocumentPath(name string) string {
	return filepath.Join(w.outputDir, name)
}

// EnsureDir creates the output directory if needed
func (w *DocumentWriter) EnsureDir() error {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// Load reads a previously written document
func (w *DocumentWriter) Load(name string) (string, error) {
	data, err := os.ReadFile(w.GetDocumentPath(name))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return string(data), nil
}

// Write writes a document unless the file already holds the same content.
// The file is replaced through a rename so readers never see partial output.
func (w *DocumentWriter) Write(doc docgen.Document) (WriteResult, error) {
	if err := validateName(doc.Name); err != nil {
		return WriteResult{}, err
	}

	path := w.GetDocumentPath(doc.Name)
	result := WriteResult{Name: doc.Name, Path: path}

	existing, err := w.Load(doc.Name)
	if err == nil && existing == doc.Content {
		return result, nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return result, err
	}

	tmp, err := os.CreateTemp(w.outputDir, "."+doc.Name+".*.tmp")
	if err != nil {
		return result, fmt.Errorf("failed to create temp file for %s: %w", doc.Name, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(doc.Content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return result, fmt.Errorf("failed to write %s: %w", doc.Name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return result, fmt.Errorf("failed to write %s: %w", doc.Name, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return result, fmt.Errorf("failed to set permissions on %s: %w", doc.Name, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return result, fmt.Errorf("failed to replace %s: %w", doc.Name, err)
	}

	result.Changed = true
	return result, nil
}

// WriteAll writes all documents in parallel. Results keep the order of docs.
func (w *DocumentWriter) WriteAll(ctx context.Context, docs []docgen.Document) ([]WriteResult, error) {
	if err := w.EnsureDir(); err != nil {
		return nil, err
	}

	g, ctx := errgroup.WithContext(ctx)
	results := make([]WriteResult, len(docs))

	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := w.Write(doc)
			results[i] = result
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}

	return results, nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("document name must not be empty")
	}
	if name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("document name %q must be a plain file name", name)
	}
	return nil
}
