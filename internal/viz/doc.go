// Package viz renders spring motion in the terminal.
//
// Static runs are drawn as asciigraph line charts, and [PhasePortrait]
// plots offset against velocity on a braille [Canvas]. The live view is a Bubble
// Tea program that animates a [spring.Collection] at a fixed frame rate:
//
//	Space - Retarget every spring (flip equilibriums)
//	P     - Pause/Resume
//	R     - Reset to the initial positions
//	Tab   - Select angular frequency or damping ratio
//	Up/K  - Increase selected parameter
//	Down/J- Decrease selected parameter
//	?     - Toggle full help
//	Q     - Quit
package viz
