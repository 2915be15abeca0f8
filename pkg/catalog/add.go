package catalog

import (
	"context"
	"io"

	"github.com/oneconcern/datacat/pkg/catalog/status"
	"github.com/oneconcern/datacat/pkg/model"
	"github.com/oneconcern/datacat/pkg/storage"
	"go.uber.org/zap"
)

// Add registers a dataset in the catalog. When source is not nil its
// content is first copied into the collection's data area, refusing to
// clobber an existing file. The entry's digest and size are computed from
// the stored bytes, then the derived artifacts are re-rendered.
func (c *Catalog) Add(ctx context.Context, dataset model.DatasetDescriptor, source io.Reader) (model.DatasetDescriptor, error) {
	if err := model.ValidateDataset(dataset); err != nil {
		return dataset, err
	}
	desc, err := c.Load(ctx)
	if err != nil {
		return dataset, err
	}
	if _, found := desc.Dataset(dataset.FileName); found {
		return dataset, status.ErrDatasetExists
	}

	key := model.GetPathToDataset(dataset.FileName)
	if source != nil {
		if err = c.store.Put(ctx, key, source, storage.NoOverWrite); err != nil {
			return dataset, err
		}
	} else {
		has, herr := c.store.Has(ctx, key)
		if herr != nil {
			return dataset, herr
		}
		if !has {
			return dataset, status.ErrDataMissing
		}
	}

	digest, size, err := c.digest(ctx, key)
	if err != nil {
		return dataset, err
	}
	dataset.Checksum = digest
	dataset.Size = size

	desc.Datasets = append(desc.Datasets, dataset)
	sortDatasets(desc.Datasets)
	desc.UpdatedAt = model.GetCatalogTimeStamp()

	if err = c.Save(ctx, desc); err != nil {
		return dataset, err
	}
	if err = c.WriteArtifacts(ctx); err != nil {
		return dataset, err
	}
	c.l.Info("dataset added",
		zap.String("file", dataset.FileName),
		zap.String("checksum", dataset.Checksum),
		zap.Int64("size", dataset.Size))
	return dataset, nil
}

// Retire removes a dataset entry from the catalog and re-renders the
// derived artifacts. With removeFile the stored file is deleted as well,
// otherwise the file stays behind and verification will report it as an
// orphan until the curator deals with it.
func (c *Catalog) Retire(ctx context.Context, fileName string, removeFile bool) error {
	desc, err := c.Load(ctx)
	if err != nil {
		return err
	}

	kept := desc.Datasets[:0]
	found := false
	for _, dataset := range desc.Datasets {
		if dataset.FileName == fileName {
			found = true
			continue
		}
		kept = append(kept, dataset)
	}
	if !found {
		return status.ErrDatasetNotFound
	}
	desc.Datasets = kept
	desc.UpdatedAt = model.GetCatalogTimeStamp()

	if removeFile {
		key := model.GetPathToDataset(fileName)
		if err = c.store.Delete(ctx, key); err != nil {
			return err
		}
		if c.cache != nil {
			if cerr := c.cache.Invalidate(key); cerr != nil {
				c.l.Debug("digest cache invalidate failed", zap.String("key", key), zap.Error(cerr))
			}
		}
	}

	if err = c.Save(ctx, desc); err != nil {
		return err
	}
	if err = c.WriteArtifacts(ctx); err != nil {
		return err
	}
	c.l.Info("dataset retired",
		zap.String("file", fileName),
		zap.Bool("fileRemoved", removeFile))
	return nil
}
