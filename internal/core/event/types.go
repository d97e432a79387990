package event

import (
	"github.com/blockbyte/engine/internal/core/ecs"
	"github.com/blockbyte/engine/internal/grid"
)

// TriggerEntered is raised when a body touches a trigger collider.
type TriggerEntered struct {
	Trigger ecs.EntityID
	Other   ecs.EntityID
}

// LevelImported is raised after a tile level has been turned into entities.
type LevelImported struct {
	Path  string
	Tiles int
}

// BrushChanged is raised by the editor when the paint material changes.
type BrushChanged struct {
	Grid     ecs.EntityID
	Material grid.Material
}

// QuitRequested asks the loop to stop after the current frame.
type QuitRequested struct{}
