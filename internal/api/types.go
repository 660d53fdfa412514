package api

// TestCase pairs one stdin input with the stdout the submitted code must produce.
type TestCase struct {
	ID             int     `json:"id,omitempty"`
	Input          string  `json:"input"`
	ExpectedOutput string  `json:"expected_output"`
	Weight         float64 `json:"weight,omitempty"`
}

// JobSpec is the body of POST /execute on the OptimusV2 API.
type JobSpec struct {
	Language   string     `json:"language"`
	SourceCode string     `json:"source_code"`
	TestCases  []TestCase `json:"test_cases"`
	TimeoutMS  int        `json:"timeout_ms"`
}

// SubmitResponse is what the API returns on job acceptance. The job_id is
// informational only; success is decided from the HTTP status code.
type SubmitResponse struct {
	JobID  string `json:"job_id,omitempty"`
	Status string `json:"status,omitempty"`
	Error  string `json:"error,omitempty"`
}
