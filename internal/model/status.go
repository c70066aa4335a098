package model

// --- Test status enum ---

// TestStatus describes the outcome of the most recent test run for a
// component's test file.
type TestStatus string

const (
	TestNotRun  TestStatus = "not_run"
	TestPassing TestStatus = "passing"
	TestFailing TestStatus = "failing"
)

// Status is the derived, non-authoritative cache of file-existence and
// test-outcome signals for a component. It is recomputed from the raw
// file listing and test results on every sync pass, affected or not —
// the computation is cheap and side-effect free.
type Status struct {
	SpecExists   bool       `json:"spec_exists"`
	CodeExists   bool       `json:"code_exists"`
	TestExists   bool       `json:"test_exists"`
	ReviewExists bool       `json:"review_exists"`
	TestStatus   TestStatus `json:"test_status"`
}
