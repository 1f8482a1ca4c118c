package hr

import "time"

type ContractType string

const (
	ContractIndefinite  ContractType = "indefinido"
	ContractFixedTerm   ContractType = "determinado"
	ContractProjectBase ContractType = "obra"
	ContractInternship  ContractType = "pasantia"
)

func (t ContractType) Valid() bool {
	switch t {
	case ContractIndefinite, ContractFixedTerm, ContractProjectBase, ContractInternship:
		return true
	}
	return false
}

// Contract is open-ended when EndDate is nil.
type Contract struct {
	ID         string       `json:"id"`
	EmployeeID string       `json:"employeeId"`
	Type       ContractType `json:"tipoContrato"`
	StartDate  time.Time    `json:"fechaInicio"`
	EndDate    *time.Time   `json:"fechaFin"`
	IsActive   bool         `json:"isActive"`
	CreatedAt  time.Time    `json:"createdAt"`
}

type ContractInput struct {
	EmployeeID string
	Type       ContractType
	StartDate  time.Time
	EndDate    *time.Time
	IsActive   *bool
}

type ContractPatch struct {
	EmployeeID *string
	Type       *ContractType
	StartDate  *time.Time
	EndDate    Nullable[time.Time]
	IsActive   *bool
}

func NewContract(id string, in ContractInput, now time.Time) *Contract {
	c := &Contract{
		ID:         id,
		EmployeeID: in.EmployeeID,
		Type:       in.Type,
		StartDate:  in.StartDate,
		IsActive:   true,
		CreatedAt:  now,
	}
	if in.EndDate != nil {
		end := *in.EndDate
		c.EndDate = &end
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	return c
}

func (c *Contract) Apply(p ContractPatch) {
	set(&c.EmployeeID, p.EmployeeID)
	set(&c.Type, p.Type)
	set(&c.StartDate, p.StartDate)
	p.EndDate.apply(&c.EndDate)
	set(&c.IsActive, p.IsActive)
}

// ExpiresWithin reports whether an active contract ends between the start of
// today and now+window, both inclusive. Open-ended contracts never expire.
func (c *Contract) ExpiresWithin(now time.Time, window time.Duration) bool {
	if !c.IsActive || c.EndDate == nil {
		return false
	}
	from, to := ExpiryRange(now, window)
	return !c.EndDate.Before(from) && !c.EndDate.After(to)
}

// ExpiryRange is the inclusive [start of today, now+window] range used by the
// expiring-contract query.
func ExpiryRange(now time.Time, window time.Duration) (time.Time, time.Time) {
	return StartOfDay(now), now.Add(window)
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
