package catalog

import (
	"context"

	"github.com/oneconcern/datacat/pkg/model"
	"go.uber.org/zap"
)

// Refresh recomputes digests and sizes from the stored bytes after an
// intentional data update, saves the descriptor and re-renders the derived
// artifacts. It returns the file names whose digest changed.
func (c *Catalog) Refresh(ctx context.Context) ([]string, error) {
	desc, err := c.Load(ctx)
	if err != nil {
		return nil, err
	}

	var changed []string
	for i := range desc.Datasets {
		key := model.GetPathToDataset(desc.Datasets[i].FileName)
		digest, size, derr := c.digest(ctx, key)
		if derr != nil {
			return nil, derr
		}
		if desc.Datasets[i].Checksum != digest {
			changed = append(changed, desc.Datasets[i].FileName)
		}
		desc.Datasets[i].Checksum = digest
		desc.Datasets[i].Size = size
	}

	if len(changed) > 0 {
		desc.UpdatedAt = model.GetCatalogTimeStamp()
	}
	if err = c.Save(ctx, desc); err != nil {
		return nil, err
	}
	if err = c.WriteArtifacts(ctx); err != nil {
		return nil, err
	}
	c.l.Info("catalog refreshed", zap.Strings("changed", changed))
	return changed, nil
}
