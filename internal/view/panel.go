package view

import (
	"html/template"
	"sync"

	"steam-cycle-viewer/internal/cycle"
)

// Regions is a point-in-time copy of the panel contents.
type Regions struct {
	Phase   Phase
	Diagram template.HTML
	Results template.HTML
}

// Panel is the in-memory View the web front-end renders from. It is safe
// for concurrent use.
type Panel struct {
	mu          sync.RWMutex
	phase       Phase
	diagram     template.HTML
	results     template.HTML
	lastDiagram template.HTML
}

// NewPanel returns an empty panel.
func NewPanel() *Panel {
	return &Panel{phase: PhaseIdle}
}

func (p *Panel) ShowLoading() {
	p.set(PhaseLoading, fragment("loading", nil), "")
}

// ShowError also forgets the last diagram, so a later reply without one
// cannot bring back an image from before the error.
func (p *Panel) ShowError(message string) {
	msg := fragment("error", message)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.phase = PhaseError
	p.diagram = msg
	p.results = ""
	p.lastDiagram = ""
}

func (p *Panel) RenderDiagram(imageData string) {
	img := fragment("diagram", diagramSource(imageData))

	p.mu.Lock()
	defer p.mu.Unlock()
	p.phase = PhaseResults
	p.diagram = img
	p.lastDiagram = img
}

func (p *Panel) RestoreDiagram() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.phase = PhaseResults
	p.diagram = p.lastDiagram
}

func (p *Panel) RenderResults(m cycle.Metrics) {
	block := fragment("results", m.Lines())

	p.mu.Lock()
	defer p.mu.Unlock()
	p.phase = PhaseResults
	p.results = block
}

// Snapshot returns the current regions.
func (p *Panel) Snapshot() Regions {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Regions{Phase: p.phase, Diagram: p.diagram, Results: p.results}
}

func (p *Panel) set(phase Phase, diagram, results template.HTML) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.phase = phase
	p.diagram = diagram
	p.results = results
}
