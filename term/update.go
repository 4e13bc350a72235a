package term

import (
	"context"
	"fmt"

	"github.com/openvocab/termstore/model"
	"github.com/openvocab/termstore/validate"
)

// UpdateRequest describes a partial term update addressed by URI.
type UpdateRequest struct {
	URI string

	// Value replaces the display string when non-nil.
	Value *string

	// Fields patches the additional fields. With merge semantics
	// (ReplaceFields false) entries are laid over the existing map and a
	// nil entry clears its key; that is the documented mechanism for
	// removing a field. With ReplaceFields set, the supplied entries
	// become the entire map and nil entries are simply dropped.
	Fields map[string]*model.Value

	// ReplaceFields switches from shallow-merge to full replacement.
	ReplaceFields bool

	// SkipCommit leaves the index write batched.
	SkipCommit bool
}

// Update rewrites a term row and its index document.
//
// Failure modes: ErrTermNotFound, validate.ErrInvalidFieldKey,
// ErrIndexWriteFailed.
func (c *Coordinator) Update(ctx context.Context, req UpdateRequest) (term *model.Term, err error) {
	defer func() { c.metrics.ObserveOperation("update", err) }()

	term, err = c.terms.FindByURI(ctx, req.URI)
	if err != nil {
		return nil, err
	}
	if term == nil {
		return nil, fmt.Errorf("%w: %q", ErrTermNotFound, req.URI)
	}

	if req.Value != nil {
		term.Value = *req.Value
	}

	if req.Fields != nil {
		var fields model.FieldMap
		if req.ReplaceFields {
			fields = make(model.FieldMap, len(req.Fields))
			for key, val := range req.Fields {
				if val == nil {
					continue
				}
				fields[key] = *val
			}
		} else {
			fields = term.AdditionalFields.Merge(req.Fields)
		}
		if err := validate.AdditionalFields(fields); err != nil {
			return nil, err
		}
		if len(fields) == 0 {
			fields = nil
		}
		term.AdditionalFields = fields
	}

	if err := c.terms.Update(ctx, term); err != nil {
		return nil, err
	}

	if err := c.writeIndex(ctx, term, !req.SkipCommit); err != nil {
		return nil, err
	}

	c.logger.Debug("term updated", nil, map[string]interface{}{
		"uri": term.URI,
	})
	return term, nil
}
