// Package sample is the technician-facing service: reading entry,
// sensory grading, per-sample transitions and the current alert board.
package sample

import "context"

type Service interface {
	// Get loads one sample with its resolved severity.
	Get(ctx context.Context, req *GetReq) (*Resp, error)
	// EnterReadings records analysis results and sensory grades.
	// Recording a result silences the matching deadline track.
	EnterReadings(ctx context.Context, req *ReadingsReq) (*Resp, error)
	// Classify assigns the analysis delay class. Rejected once a
	// reading due date has been stamped.
	Classify(ctx context.Context, req *ClassifyReq) error
	// Transition moves the sample through its lifecycle.
	Transition(ctx context.Context, req *TransitionReq) (*Resp, error)
	// Alerts resolves the severity of every non-terminal sample.
	Alerts(ctx context.Context) ([]*AlertResp, error)
}
