package hr

// CargoWithRelations is a cargo with its department and division inlined.
type CargoWithRelations struct {
	Cargo
	Departamento DepartamentoWithRelations `json:"departamento"`
}

type DepartamentoWithRelations struct {
	Departamento
	Gerencia Gerencia `json:"gerencia"`
}

// EmployeeWithRelations is the denormalized employee read model. Supervisor is
// expanded one level only.
type EmployeeWithRelations struct {
	Employee
	User       User               `json:"user"`
	Cargo      CargoWithRelations `json:"cargo"`
	Supervisor *Employee          `json:"supervisor,omitempty"`
	Contract   *Contract          `json:"contract,omitempty"`
}

type CandidateWithRelations struct {
	Candidate
	Cargo           CargoWithRelations `json:"cargo"`
	SubmittedByUser User               `json:"submittedByUser"`
	EvaluatedByUser *User              `json:"evaluatedByUser,omitempty"`
}

type ProbationPeriodWithRelations struct {
	ProbationPeriod
	Employee        EmployeeWithRelations `json:"employee"`
	EvaluatedByUser *User                 `json:"evaluatedByUser,omitempty"`
}

type ContractWithEmployee struct {
	Contract
	Employee EmployeeWithRelations `json:"employee"`
}
