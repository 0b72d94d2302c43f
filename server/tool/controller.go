// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package tool

import (
	"errors"
	"fmt"
	"github.com/SoftbearStudios/sculpt/server/blob"
	"github.com/SoftbearStudios/sculpt/server/level"
	"github.com/SoftbearStudios/sculpt/server/scene"
	"github.com/SoftbearStudios/sculpt/server/terrain"
	"github.com/SoftbearStudios/sculpt/server/terrain/noise"
	"github.com/SoftbearStudios/sculpt/server/world"
)

const (
	MinTimeScale = 1.0 / 8
	MaxTimeScale = 8
	// DayLength is the number of scaled seconds in a day.
	DayLength = 120
)

var (
	ErrNoSelection = errors.New("no block selected")
	ErrNoSuchBlock = errors.New("no such block")
)

// Options configure a Controller. Zero values use defaults.
type Options struct {
	Params      noise.Params // Generation template, Hilliness is the initial hilliness.
	Size        float32
	Resolution  int
	Workers     int
	BlobSpacing float32
	BlobRadius  float32
}

func (options *Options) defaults() {
	if len(options.Params.Bands) == 0 {
		hilliness := options.Params.Hilliness
		options.Params = noise.DefaultParams()
		if hilliness != 0 {
			options.Params.Hilliness = hilliness
		}
	}
	options.Params.Hilliness = noise.ClampHilliness(options.Params.Hilliness)
	if options.Size <= 0 {
		options.Size = terrain.GenerateSize
	}
	if options.Resolution <= 0 {
		options.Resolution = terrain.GenerateResolution
	}
}

// Controller owns one sandbox: its surface, blobs and blocks, and the tool state that
// edits them. It is not safe for concurrent use; drive it from one goroutine and call
// Update once per frame.
type Controller struct {
	renderer scene.Renderer
	observer Observer
	camera   *scene.Camera
	surface  *terrain.Surface
	blobs    *blob.Store
	wizard   *level.Wizard
	blocks   []*level.Block
	options  Options

	tool     Tool
	pointer  world.Vec2f // normalized device coordinates
	painting bool        // primary button held while terraforming
	looking  bool        // secondary button held
	keys     map[Key]bool
	hovered  scene.Handle
	selected *level.Block

	timeScale float32
	timeOfDay float32 // [0, 1)
	frame     world.Ticks
}

// New creates a Controller with a flat platform in renderer. observer may be nil.
func New(renderer scene.Renderer, camera *scene.Camera, options Options, observer Observer) *Controller {
	options.defaults()
	if observer == nil {
		observer = NopObserver{}
	}

	surface := terrain.NewSurface(renderer)
	surface.Params = options.Params
	surface.Workers = options.Workers

	return &Controller{
		renderer:  renderer,
		observer:  observer,
		camera:    camera,
		surface:   surface,
		blobs:     blob.New(renderer, options.BlobSpacing, options.BlobRadius),
		wizard:    level.NewWizard(renderer),
		options:   options,
		keys:      make(map[Key]bool),
		timeScale: 1,
		timeOfDay: 0.25,
	}
}

func (c *Controller) Tool() Tool {
	return c.tool
}

func (c *Controller) Wizard() level.State {
	return c.wizard.State()
}

func (c *Controller) Surface() *terrain.Surface {
	return c.surface
}

func (c *Controller) Blobs() *blob.Store {
	return c.blobs
}

func (c *Controller) Camera() *scene.Camera {
	return c.camera
}

// Blocks returns the committed blocks in commit order.
func (c *Controller) Blocks() []*level.Block {
	return c.blocks
}

// Selected returns the selected block or nil.
func (c *Controller) Selected() *level.Block {
	return c.selected
}

// SetTool is the only way the active tool changes. Leaving a tool abandons whatever it was doing.
func (c *Controller) SetTool(tool Tool) {
	if tool == c.tool {
		return
	}

	switch c.tool {
	case Terraforming:
		c.painting = false
		c.blobs.EndGesture()
	case LandLeveling:
		c.wizard.Reset()
	}

	if tool != None {
		c.hovered = 0
		c.selected = nil
		c.renderer.Highlight(0)
	}

	c.tool = tool
}

func (c *Controller) toggle(tool Tool) {
	if c.tool == tool {
		c.SetTool(None)
	} else {
		c.SetTool(tool)
	}
}

// candidates are the things tools can target: the surface and committed blocks, never blobs.
func (c *Controller) candidates() []scene.Handle {
	handles := make([]scene.Handle, 0, len(c.blocks)+1)
	handles = append(handles, c.surface.Handle())
	for _, block := range c.blocks {
		handles = append(handles, block.Handle())
	}
	return handles
}

func (c *Controller) raycast() (scene.Hit, bool) {
	return c.renderer.RayIntersect(c.camera.Ray(c.pointer), c.candidates())
}

func (c *Controller) blockOf(h scene.Handle) *level.Block {
	if h == 0 {
		return nil
	}
	for _, block := range c.blocks {
		if block.Handle() == h {
			return block
		}
	}
	return nil
}

func (c *Controller) PointerDown(button Button, ndc world.Vec2f) {
	c.pointer = ndc.Clamp()

	if button == ButtonSecondary {
		c.looking = true
		return
	}
	if button != ButtonPrimary {
		return
	}

	switch c.tool {
	case Terraforming:
		c.painting = true
		c.paint()
	case LandLeveling:
		hit, ok := c.raycast()
		if block := c.wizard.Click(hit.Point, ok, c.pointer); block != nil {
			c.blocks = append(c.blocks, block)
			c.observer.BlockCommitted(block)
		}
	case None:
		hit, ok := c.raycast()
		if block := c.blockOf(hit.Handle); ok && block != nil {
			c.selected = block
		} else {
			c.selected = nil
		}
		c.highlight()
	}
}

func (c *Controller) PointerMove(ndc world.Vec2f) {
	ndc = ndc.Clamp()
	delta := ndc.Sub(c.pointer)
	c.pointer = ndc

	if c.looking {
		c.camera.Rotate(-delta.X*scene.LookSensitivity, delta.Y*scene.LookSensitivity)
	}

	switch c.tool {
	case Terraforming:
		if c.painting {
			c.paint()
		}
	case LandLeveling:
		var hit scene.Hit
		ok := false
		if c.wizard.State() == level.SecondCorner {
			hit, ok = c.raycast()
		}
		c.wizard.Move(hit.Point, ok, c.pointer)
	case None:
		c.hovered = 0
		if hit, ok := c.raycast(); ok && c.blockOf(hit.Handle) != nil {
			c.hovered = hit.Handle
		}
		c.highlight()
	}
}

func (c *Controller) PointerUp(button Button, ndc world.Vec2f) {
	c.pointer = ndc.Clamp()

	switch button {
	case ButtonSecondary:
		c.looking = false
	case ButtonPrimary:
		if c.painting {
			c.painting = false
			c.blobs.EndGesture()
		}
	}
}

// highlight shows the hovered block, or else the selected one.
func (c *Controller) highlight() {
	h := c.hovered
	if h == 0 && c.selected != nil {
		h = c.selected.Handle()
	}
	c.renderer.Highlight(h)
}

// paint places a blob where the pointer hits, if anywhere.
func (c *Controller) paint() {
	hit, ok := c.raycast()
	if !ok {
		return
	}
	if c.blobs.Place(hit.Point) {
		c.observer.BlobPlaced(hit.Point)
	}
}

// KeyDown handles a pressed key. The only error is a rejected generation.
func (c *Controller) KeyDown(key Key) error {
	switch key {
	case KeyTerraform:
		c.toggle(Terraforming)
	case KeyLevel:
		c.toggle(LandLeveling)
	case KeyGenerate:
		return c.Generate()
	case KeyClear:
		c.blobs.Clear()
	case KeySpeedUp:
		c.timeScale = world.Clamp(c.timeScale*2, MinTimeScale, MaxTimeScale)
	case KeySlowDown:
		c.timeScale = world.Clamp(c.timeScale*0.5, MinTimeScale, MaxTimeScale)
	default:
		c.keys[key] = true
	}
	return nil
}

func (c *Controller) KeyUp(key Key) {
	delete(c.keys, key)
}

func (c *Controller) movement() scene.Movement {
	return scene.Movement{
		Forward: c.keys[KeyForward],
		Back:    c.keys[KeyBack],
		Left:    c.keys[KeyLeft],
		Right:   c.keys[KeyRight],
		Up:      c.keys[KeyUp],
		Down:    c.keys[KeyDown] || c.keys[KeyDownRight],
	}
}

// SetHilliness sets the hilliness of the next generation, clamped to the valid range.
func (c *Controller) SetHilliness(hilliness float32) float32 {
	c.options.Params.Hilliness = noise.ClampHilliness(hilliness)
	return c.options.Params.Hilliness
}

func (c *Controller) Hilliness() float32 {
	return c.options.Params.Hilliness
}

// Generate starts generating new terrain. It is rejected while a generation is running.
func (c *Controller) Generate() error {
	err := c.surface.Generate(c.options.Params.Hilliness, c.options.Size, c.options.Resolution)
	if err != nil {
		c.observer.GenerationRejected(err)
		return err
	}
	c.observer.GenerationStarted()
	return nil
}

// EditSelectedHeight changes the height of the selected block.
func (c *Controller) EditSelectedHeight(h float32) error {
	if c.selected == nil {
		return ErrNoSelection
	}
	return c.editHeight(c.selected, h)
}

// EditHeight changes the height of a block by ID.
func (c *Controller) EditHeight(id level.ID, h float32) error {
	for _, block := range c.blocks {
		if block.ID == id {
			return c.editHeight(block, h)
		}
	}
	return fmt.Errorf("%w: %d", ErrNoSuchBlock, id)
}

func (c *Controller) editHeight(block *level.Block, h float32) error {
	old := block.Handle()
	if err := block.EditHeight(c.renderer, h); err != nil {
		return err
	}
	if c.hovered == old {
		c.hovered = 0
	}
	if c.tool == None {
		c.highlight()
	}
	return nil
}

// Update advances the sandbox by seconds of real time.
func (c *Controller) Update(seconds float32) {
	if gen, ok := c.surface.Poll(); ok {
		c.observer.GenerationFinished(gen)
	}

	c.camera.Move(c.movement(), seconds)

	// Keep painting under the cursor while the camera moves.
	if c.painting {
		c.paint()
	}

	c.timeOfDay += seconds * c.timeScale / DayLength
	c.timeOfDay -= float32(int(c.timeOfDay))
	c.frame++
}

// Close destroys everything the controller created. It waits for a running generation.
func (c *Controller) Close() {
	c.SetTool(None)
	c.surface.Close()
	c.blobs.Close()
	for _, block := range c.blocks {
		block.Destroy(c.renderer)
	}
	c.blocks = nil
	c.selected = nil
}
