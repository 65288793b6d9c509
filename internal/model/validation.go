package model

// ValidationCheck is one named prerequisite check with its outcome.
type ValidationCheck struct {
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// ValidationResult reports contract readiness for approval. It is built
// fresh on every validation call and never persisted.
type ValidationResult struct {
	Valid         bool              `json:"valid"`
	CanAutoCreate bool              `json:"can_auto_create"`
	Checks        []ValidationCheck `json:"checks"`
}

func (r *ValidationResult) AddCheck(passed bool, message string) {
	r.Checks = append(r.Checks, ValidationCheck{Passed: passed, Message: message})
}
