package catalog

import (
	"context"
	"sort"

	"github.com/oneconcern/datacat/pkg/catalog/status"
	"github.com/oneconcern/datacat/pkg/model"
)

// ApplyDatasetFunc is a function to be applied on a catalog entry
type ApplyDatasetFunc func(model.DatasetDescriptor) error

// List returns all catalog entries, in lexicographic order of file names
func (c *Catalog) List(ctx context.Context) ([]model.DatasetDescriptor, error) {
	desc, err := c.Load(ctx)
	if err != nil {
		return nil, err
	}
	datasets := make([]model.DatasetDescriptor, len(desc.Datasets))
	copy(datasets, desc.Datasets)
	sortDatasets(datasets)
	return datasets, nil
}

// ListApply applies some function to the catalog entries, in lexicographic
// order of file names. Iteration stops at the first error.
func (c *Catalog) ListApply(ctx context.Context, apply ApplyDatasetFunc) error {
	datasets, err := c.List(ctx)
	if err != nil {
		return err
	}
	for _, dataset := range datasets {
		if err := apply(dataset); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the catalog entry for a file name
func (c *Catalog) Get(ctx context.Context, fileName string) (model.DatasetDescriptor, error) {
	desc, err := c.Load(ctx)
	if err != nil {
		return model.DatasetDescriptor{}, err
	}
	dataset, ok := desc.Dataset(fileName)
	if !ok {
		return model.DatasetDescriptor{}, status.ErrDatasetNotFound
	}
	return dataset, nil
}

func sortDatasets(datasets []model.DatasetDescriptor) {
	sort.Slice(datasets, func(i, j int) bool {
		return datasets[i].FileName < datasets[j].FileName
	})
}
