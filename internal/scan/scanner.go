// Package scan discovers PHP files and extracts accessor metadata for every
// property declaration they contain.
package scan

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/maypok86/otter"
	"github.com/mvp-joe/propgen/internal/config"
	"github.com/mvp-joe/propgen/internal/parsers"
	"github.com/mvp-joe/propgen/internal/property"
)

// Result is one extracted property.
type Result struct {
	File       string `json:"file"`
	Class      string `json:"class,omitempty"`
	Visibility string `json:"visibility,omitempty"`
	Line       int    `json:"line"`
	Column     int    `json:"column"`
	// Simple is true when the line matches the plain "visibility $name" form.
	Simple    bool               `json:"simple"`
	Accessors property.Accessors `json:"accessors"`
}

// FileResult holds the properties found in one file.
type FileResult struct {
	Path       string   `json:"path"`
	Hash       uint64   `json:"-"`
	Properties []Result `json:"properties"`
}

// Stats summarizes a scan.
type Stats struct {
	Files          int           `json:"files"`
	Properties     int           `json:"properties"`
	Failed         int           `json:"failed"`
	CacheHits      int           `json:"cache_hits"`
	ProcessingTime time.Duration `json:"processing_time"`
}

// Report is the outcome of scanning a directory tree.
type Report struct {
	Files []*FileResult `json:"files"`
	Stats Stats         `json:"stats"`
}

// Scanner runs property extraction over files, caching results by content hash.
type Scanner struct {
	discovery *FileDiscovery
	parser    *parsers.PHPParser
	cache     otter.Cache[string, *FileResult]
}

// NewScanner creates a scanner rooted at rootDir.
func NewScanner(rootDir string, cfg *config.Config) (*Scanner, error) {
	discovery, err := NewFileDiscovery(rootDir, cfg.Paths.Include, cfg.Paths.Ignore)
	if err != nil {
		return nil, fmt.Errorf("failed to compile path patterns: %w", err)
	}

	cache, err := otter.MustBuilder[string, *FileResult](cfg.Cache.MaxEntries).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}

	return &Scanner{
		discovery: discovery,
		parser:    parsers.NewPHPParser(),
		cache:     cache,
	}, nil
}

// Discovery returns the file matcher used by the scanner.
func (s *Scanner) Discovery() *FileDiscovery {
	return s.discovery
}

// Scan discovers all matching files and extracts their properties.
func (s *Scanner) Scan(ctx context.Context, progress ProgressReporter) (*Report, error) {
	if progress == nil {
		progress = &NoOpProgressReporter{}
	}
	start := time.Now()

	progress.OnDiscoveryStart()
	files, err := s.discovery.DiscoverFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to discover files: %w", err)
	}
	progress.OnDiscoveryComplete(len(files))

	report, err := s.ScanFiles(ctx, files, progress)
	if err != nil {
		return nil, err
	}
	report.Stats.ProcessingTime = time.Since(start)

	progress.OnComplete(&report.Stats)
	return report, nil
}

// ScanFiles extracts properties from the given files. Unreadable or
// unparseable files are logged and counted as failed.
func (s *Scanner) ScanFiles(ctx context.Context, files []string, progress ProgressReporter) (*Report, error) {
	if progress == nil {
		progress = &NoOpProgressReporter{}
	}

	report := &Report{Files: []*FileResult{}}
	progress.OnFileProcessingStart(len(files))

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, hit, err := s.scanFile(ctx, path)
		progress.OnFileProcessed(path)
		if err != nil {
			log.Printf("Warning: failed to scan %s: %v", path, err)
			report.Stats.Failed++
			continue
		}

		if hit {
			report.Stats.CacheHits++
		}
		report.Stats.Files++
		report.Stats.Properties += len(result.Properties)
		report.Files = append(report.Files, result)
	}

	return report, nil
}

// ScanFile extracts the properties of a single file.
func (s *Scanner) ScanFile(ctx context.Context, path string) (*FileResult, error) {
	result, _, err := s.scanFile(ctx, path)
	return result, err
}

func (s *Scanner) scanFile(ctx context.Context, path string) (*FileResult, bool, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}

	hash := xxhash.Sum64(source)
	if cached, ok := s.cache.Get(path); ok && cached.Hash == hash {
		return cached, true, nil
	}

	rel, err := s.discovery.Rel(path)
	if err != nil {
		rel = path
	}

	result, err := s.ScanSource(ctx, rel, source)
	if err != nil {
		return nil, false, err
	}
	result.Hash = hash

	s.cache.Set(path, result)
	return result, false, nil
}

// ScanSource extracts properties from in-memory source. name is only used for reporting.
func (s *Scanner) ScanSource(ctx context.Context, name string, source []byte) (*FileResult, error) {
	decls, err := s.parser.FindProperties(ctx, source)
	if err != nil {
		return nil, err
	}

	doc := property.NewTextDocument(string(source))
	result := &FileResult{
		Path:       name,
		Hash:       xxhash.Sum64(source),
		Properties: []Result{},
	}

	for _, decl := range decls {
		prop, err := property.FromPosition(doc, property.Position{Line: decl.Line, Character: decl.Column})
		if err != nil {
			log.Printf("Warning: %s:%d: %v", name, decl.Line+1, err)
			continue
		}

		result.Properties = append(result.Properties, Result{
			File:       name,
			Class:      decl.Class,
			Visibility: decl.Visibility,
			Line:       decl.Line,
			Column:     decl.Column,
			Simple:     property.IsPropertyDeclaration(doc.LineAt(decl.Line).Text),
			Accessors:  prop.Accessors(),
		})
	}

	return result, nil
}

// Forget drops the cached result for path.
func (s *Scanner) Forget(path string) {
	s.cache.Delete(path)
}

// Close releases the result cache.
func (s *Scanner) Close() {
	s.cache.Close()
}
