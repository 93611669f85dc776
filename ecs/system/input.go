package system

import (
	"math"

	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const stickDeadzone = 0.2

var (
	leftKeys   = []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}
	rightKeys  = []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}
	jumpKeys   = []ebiten.Key{ebiten.KeySpace}
	crouchKeys = []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}
	shoveKeys  = []ebiten.Key{ebiten.KeyJ, ebiten.KeyControlLeft}
	pauseKeys  = []ebiten.Key{ebiten.KeyEscape}
)

type InputSystem struct {
	// Sample overrides device polling; tests feed scripted input through it.
	Sample func() component.Input
}

func NewInputSystem() *InputSystem {
	return &InputSystem{Sample: SampleDevices}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	sample := SampleDevices
	if i != nil && i.Sample != nil {
		sample = i.Sample
	}
	state := sample()

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		*input = state
	})
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

func anyJustReleased(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustReleased(k) {
			return true
		}
	}
	return false
}

// SampleDevices polls the keyboard and the first standard gamepad.
func SampleDevices() component.Input {
	var in component.Input
	if anyPressed(leftKeys) {
		in.MoveX -= 1
	}
	if anyPressed(rightKeys) {
		in.MoveX += 1
	}
	in.Jump = anyPressed(jumpKeys)
	in.JumpPressed = anyJustPressed(jumpKeys)
	in.JumpReleased = anyJustReleased(jumpKeys)
	in.Crouch = anyPressed(crouchKeys)
	in.Shove = anyPressed(shoveKeys)
	in.ShovePressed = anyJustPressed(shoveKeys)
	in.ShoveReleased = anyJustReleased(shoveKeys)
	in.Pause = anyJustPressed(pauseKeys)

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		if ebiten.IsStandardGamepadLayoutAvailable(id) {
			leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
			if math.Abs(leftX) > stickDeadzone {
				in.MoveX = leftX
			}
			leftY := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
			if math.Abs(leftY) > stickDeadzone {
				in.MoveY = leftY
			}

			jumpBtn := ebiten.StandardGamepadButtonRightBottom
			shoveBtn := ebiten.StandardGamepadButtonRightLeft
			in.Jump = in.Jump || ebiten.IsStandardGamepadButtonPressed(id, jumpBtn)
			in.JumpPressed = in.JumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, jumpBtn)
			in.JumpReleased = in.JumpReleased || inpututil.IsStandardGamepadButtonJustReleased(id, jumpBtn)
			in.Shove = in.Shove || ebiten.IsStandardGamepadButtonPressed(id, shoveBtn)
			in.ShovePressed = in.ShovePressed || inpututil.IsStandardGamepadButtonJustPressed(id, shoveBtn)
			in.ShoveReleased = in.ShoveReleased || inpututil.IsStandardGamepadButtonJustReleased(id, shoveBtn)
			in.Crouch = in.Crouch || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftBottom)
			in.Pause = in.Pause || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight)
		}
	}
	if in.MoveY > 0.6 {
		in.Crouch = true
	}

	return in
}
