package snapshot

// Failure messages reported when a wait ended in ERROR.
const (
	MsgCreateFailed = "Failed to build image snapshot"
	MsgDeleteFailed = "Failed to delete all images"
)

// Report is the final success/failure decision for one invocation.
type Report struct {
	Failed bool
	Msg    string
	// Result is nil when the invocation failed before anything was attempted.
	Result *Result
	Err    error
}

// NewReport decides the outcome of an invocation. A fatal err always fails;
// otherwise the invocation fails only if the result carries an error status.
func NewReport(res *Result, err error) Report {
	if err != nil {
		return Report{Failed: true, Msg: err.Error(), Result: res, Err: err}
	}
	if res.Failed() {
		msg := MsgDeleteFailed
		if res.Action == ActionCreate {
			msg = MsgCreateFailed
		}
		return Report{Failed: true, Msg: msg, Result: res}
	}
	return Report{Result: res}
}
