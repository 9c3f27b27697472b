package tcerrors

import "encoding/json"

// Report is the wire shape a CLI or REPL renders a failure as: the leaf
// Error plus the full position/context trace accumulated by AtPos/WithVar,
// outermost frame first.
type Report struct {
	Schema  string           `json:"schema"`
	Code    Code             `json:"code"`
	Message string           `json:"message"`
	Data    map[string]any   `json:"data,omitempty"`
	Trace   []map[string]any `json:"trace,omitempty"`
}

// ToReport walks err's wrapper chain into a flat Report.
func ToReport(err error) *Report {
	if err == nil {
		return nil
	}
	r := &Report{Schema: "corekernel.tcerror/v1"}
	cur := err
	for cur != nil {
		switch e := cur.(type) {
		case *Error:
			r.Code = e.Code
			r.Message = e.Message
			r.Data = e.Data
			cur = nil
		case *PosWrap:
			r.Trace = append(r.Trace, map[string]any{"pos": e.Pos.Label})
			cur = e.Inner
		case *CtxWrap:
			r.Trace = append(r.Trace, map[string]any{"var": e.VarName.String()})
			cur = e.Inner
		default:
			r.Code = "RUNTIME"
			r.Message = cur.Error()
			cur = nil
		}
	}
	return r
}

// ToJSON renders the report deterministically, matching the teacher's
// indented/compact ToJSON split for CLI vs. machine consumers.
func (r *Report) ToJSON(compact bool) (string, error) {
	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
