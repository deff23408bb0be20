// Package form is the coordinator-facing service over sample forms:
// creation, draft editing, sample list management and status
// transitions.
package form

import (
	"context"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/common"
)

// Service methods accept a context.Context so the web layer can pass
// *gin.Context straight through and impls can read the current user.
type Service interface {
	// Create stores a new draft form with its initial sample list.
	Create(ctx context.Context, req *CreateReq) (*Resp, error)
	// Update edits header fields. Draft forms only.
	Update(ctx context.Context, req *UpdateReq) error
	// UpdateBatchNumbers edits the reagent lot set. Allowed until the
	// form completes.
	UpdateBatchNumbers(ctx context.Context, req *BatchNumbersReq) error
	// Get loads one form with its ordered samples and their current
	// alert severities.
	Get(ctx context.Context, req *GetReq) (*Resp, error)
	// List pages forms filtered by site and status.
	List(ctx context.Context, req *ListReq) (*common.PageResp[[]*Resp], error)

	// AddSample appends a sample to a draft form.
	AddSample(ctx context.Context, req *AddSampleReq) (*SampleResp, error)
	// DuplicateSample copies a sample's descriptive fields under a new
	// number. Draft forms only.
	DuplicateSample(ctx context.Context, req *DuplicateSampleReq) (*SampleResp, error)
	// RemoveSample deletes a sample from a draft form.
	RemoveSample(ctx context.Context, req *RemoveSampleReq) error

	// Transition moves the form through its lifecycle, persisting the
	// emitted patches. Failed preconditions leave everything unchanged.
	Transition(ctx context.Context, req *TransitionReq) (*Resp, error)
}
