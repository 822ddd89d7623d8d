package app

import (
	"context"
	"fmt"
	"log"
	"path"
)

type (
	AssetCreator interface {
		Create(ctx context.Context, content []byte, name string, opts CreateOptions) (CreateResult, error)
	}

	ObjectSource interface {
		ListObjects(ctx context.Context, prefix string, filters []string) ([]string, error)
		GetObject(ctx context.Context, key string) ([]byte, error)
	}

	// Importer uploads the images of an object store to the asset server.
	Importer struct {
		mapper AssetCreator
		source ObjectSource
	}

	ImportResult struct {
		Key string `json:"key"`
		CreateResult
	}
)

var importExtensions = []string{"png", "jpg", "jpeg", "gif", "svg"}

func NewImporter(mapper AssetCreator, source ObjectSource) *Importer {
	return &Importer{mapper: mapper, source: source}
}

// Import creates one asset per image under prefix, named after the object's
// base name. It stops at the first failure and returns what was imported so far.
func (i *Importer) Import(ctx context.Context, prefix, tags string) ([]ImportResult, error) {
	keys, err := i.source.ListObjects(ctx, prefix, importExtensions)
	if err != nil {
		return nil, err
	}

	results := make([]ImportResult, 0, len(keys))
	for _, key := range keys {
		content, err := i.source.GetObject(ctx, key)
		if err != nil {
			return results, err
		}

		result, err := i.mapper.Create(ctx, content, path.Base(key), CreateOptions{Tags: tags})
		if err != nil {
			return results, fmt.Errorf("import %s: %w", key, err)
		}
		if result.Conflicted() {
			log.Printf("import %s: asset already exists", key)
		}
		results = append(results, ImportResult{Key: key, CreateResult: result})
	}
	return results, nil
}
