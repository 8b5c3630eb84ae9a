package operations

import (
	"sync"
	"time"

	"salescli/pkg/contracts/domain"
)

// OperationStatusValue represents the overall operation status enum
type OperationStatusValue string

const (
	OperationStatusPending   OperationStatusValue = "pending"
	OperationStatusRunning   OperationStatusValue = "running"
	OperationStatusCompleted OperationStatusValue = "completed"
	OperationStatusFailed    OperationStatusValue = "failed"
)

// OperationState represents the complete state of a report run.
// Steps hand their results to later steps through it.
type OperationState struct {
	mu sync.RWMutex

	ID        string               `json:"id"`
	Status    OperationStatusValue `json:"status"`
	StartTime time.Time            `json:"start_time"`
	EndTime   *time.Time           `json:"end_time,omitempty"`

	Steps map[string]*StepState `json:"steps"`
	order []string

	table      *domain.Table
	statistics domain.Statistics
	summary    []domain.SummaryRecord
	outputs    []string

	Error error `json:"error,omitempty"`
}

// NewOperationState creates a new operation state
func NewOperationState(id string) *OperationState {
	return &OperationState{
		ID:        id,
		Status:    OperationStatusPending,
		StartTime: time.Now(),
		Steps:     make(map[string]*StepState),
	}
}

// Start marks the operation as running
func (p *OperationState) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Status = OperationStatusRunning
	p.StartTime = time.Now()
}

// Complete marks the operation as completed
func (p *OperationState) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	p.EndTime = &now
	p.Status = OperationStatusCompleted
}

// Fail marks the operation as failed
func (p *OperationState) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	p.EndTime = &now
	p.Status = OperationStatusFailed
	p.Error = err
}

// GetStage returns the state of a specific Step
func (p *OperationState) GetStage(stageID string) *StepState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.Steps[stageID]
}

// SetStage registers the state of a Step. Registration order is run order.
func (p *OperationState) SetStage(stageID string, state *StepState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.Steps[stageID]; !exists {
		p.order = append(p.order, stageID)
	}
	p.Steps[stageID] = state
}

// Table returns the loaded table, nil before the load step
func (p *OperationState) Table() *domain.Table {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.table
}

// SetTable stores the loaded table
func (p *OperationState) SetTable(table *domain.Table) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.table = table
}

// Statistics returns the aggregates computed so far
func (p *OperationState) Statistics() domain.Statistics {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.statistics
}

// UpdateStatistics applies fn to the stored statistics
func (p *OperationState) UpdateStatistics(fn func(*domain.Statistics)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.statistics)
}

// Summary returns the summary records, nil before the report step
func (p *OperationState) Summary() []domain.SummaryRecord {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.summary
}

// SetSummary stores the summary records
func (p *OperationState) SetSummary(records []domain.SummaryRecord) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.summary = records
}

// Outputs returns the files written by the run
func (p *OperationState) Outputs() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]string(nil), p.outputs...)
}

// AddOutput records a written file
func (p *OperationState) AddOutput(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.outputs = append(p.outputs, path)
}

// Duration returns the duration of the operation execution
func (p *OperationState) Duration() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.EndTime != nil {
		return p.EndTime.Sub(p.StartTime)
	}
	return time.Since(p.StartTime)
}

// GetCompletedStages returns all completed Step states in run order
func (p *OperationState) GetCompletedStages() []*StepState {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var stages []*StepState
	for _, id := range p.order {
		if s := p.Steps[id]; s != nil && s.GetStatus() == StepStatusCompleted {
			stages = append(stages, s)
		}
	}
	return stages
}
