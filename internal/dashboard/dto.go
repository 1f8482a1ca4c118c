package dashboard

import "github.com/frahmantamala/hr-management/internal/core/hr"

type ExpiringResponse struct {
	Contracts        []*hr.ContractWithEmployee         `json:"contracts"`
	ProbationPeriods []*hr.ProbationPeriodWithRelations `json:"probationPeriods"`
}
