package term

import (
	"context"
	"fmt"

	"github.com/openvocab/termstore/model"
)

// Delete removes a term from the store of record and from the search
// index, committing the index when asked to. Both removals are best-effort
// idempotent: a URI that is already gone from either system is not an
// error, and the index delete proceeds even when the store had no row.
func (c *Coordinator) Delete(ctx context.Context, uri string, commit bool) (err error) {
	defer func() { c.metrics.ObserveOperation("delete", err) }()

	affected, err := c.terms.DeleteByURI(ctx, uri)
	if err != nil {
		return err
	}

	if err := c.index.Delete(ctx, model.HashURI(uri), commit); err != nil {
		c.metrics.ObserveDivergence()
		c.logger.Error("store and index diverged on term delete", err, map[string]interface{}{
			"uri": uri,
		})
		return fmt.Errorf("%w: %w", ErrIndexWriteFailed, err)
	}

	if affected > 0 {
		c.logger.Info("term deleted", nil, map[string]interface{}{
			"uri": uri,
		})
	}
	return nil
}
