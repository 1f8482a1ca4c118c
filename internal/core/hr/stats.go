package hr

// DashboardStats is the flat record served to the dashboard.
type DashboardStats struct {
	TotalEmployees           int `json:"totalEmployees"`
	ProbationEmployees       int `json:"probationEmployees"`
	TotalContracts           int `json:"totalContracts"`
	ActiveContracts          int `json:"activeContracts"`
	IndefiniteContracts      int `json:"indefiniteContracts"`
	ExpiringContracts        int `json:"expiringContracts"`
	TotalCandidates          int `json:"totalCandidates"`
	CandidatesInEvaluation   int `json:"candidatesInEvaluation"`
	ApprovedCandidates       int `json:"approvedCandidates"`
	ActiveProbationPeriods   int `json:"activeProbationPeriods"`
	ExpiringProbationPeriods int `json:"expiringProbationPeriods"`
}
