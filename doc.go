// Package libled renders animated effects for small RGB LED matrices.
//
// Everything draws into a [Canvas], a fixed-size frame buffer of straight
// alpha [Color] values. Effects implement [Effect] and are rendered once per
// frame with the current time in milliseconds; they compose into trees with
// [Composite], post-process wrappers such as [Fade] and [Filtered], and
// transitions such as [CrossFade] and [Melt].
//
// # Quick start
//
// A [Player] drives an effect tree at a fixed frame interval and shows the
// result on a [Display]:
//
//	scenes := libled.NewPlaylist().
//		Add("plasma", libled.NewPlasma()).
//		Add("fire", libled.NewShaderEffect(libled.FireShader))
//	p := libled.NewPlayer(window, scenes, libled.PlayerConfig{Width: 128, Height: 32})
//	err := p.Run(ctx)
//
// Displays live in subpackages: display/window emulates the matrix in an
// [Ebitengine] window, display/terminal draws it with tcell half blocks and
// display/hub75 drives a real panel over GPIO. [HeadlessDisplay] keeps the
// last frame for tests and recording.
//
// # Time
//
// Effects never read the wall clock. Each one measures its own elapsed time
// from the first frame it is rendered with, and a [Timeline] decides what
// happens when a run ends: freeze on the last frame, restart, or restart
// after an idle gap. [WithClock] substitutes a [Clock] for a subtree.
//
// # Tweens
//
// [Tween] chains keyframes with waits and per-key easing from [gween]:
//
//	tw := libled.NewTween(100).Wait(400).To(-133).During(2000).Via(ease.OutCubic)
//	tw.Step(25)
//	x := tw.Value(0)
//
// # Shaders and particles
//
// A [Shader] is a pure function of (u, v, t) and fills a canvas through
// [ShaderEffect] or a texture through [Shader.Fill]. [ParticleSystem],
// [Explosion] and [Fireworks] run CPU particles from fixed pools.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package libled
