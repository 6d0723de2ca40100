package shor

// Report is the flat, string-valued form of an Outcome used by the JSON
// printer and the HTTP API.
type Report struct {
	N        string   `json:"n"`
	Factors  []string `json:"factors,omitempty"`
	Stage    Stage    `json:"stage,omitempty"`
	Attempts int      `json:"attempts"`
	Error    string   `json:"error,omitempty"`
}

func NewReport(o Outcome) Report {
	r := Report{N: o.Label()}
	if o.Err != nil {
		r.Error = o.Err.Error()
	}
	if o.Result == nil {
		return r
	}
	r.Stage = o.Result.Stage
	r.Attempts = len(o.Result.Attempts)
	if o.Result.Found() {
		r.Factors = []string{o.Result.Factors.P.String(), o.Result.Factors.Q.String()}
	}
	return r
}
