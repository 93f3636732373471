// SPDX-License-Identifier: EPL-2.0

package engine

// minDistance is where attenuation starts. Closer voices play at full gain.
const minDistance = 1

var worldUp = Vec3{Y: 1}

type listener struct {
	pos Vec3
	dir Vec3
}

var defaultListener = listener{dir: Vec3{Z: -1}}

// Attenuation is the inverse-distance gain for a voice dist units from the
// listener.
func Attenuation(dist, rolloff float32) float32 {
	if dist < minDistance {
		dist = minDistance
	}
	g := minDistance / (minDistance + rolloff*(dist-minDistance))
	if g > 1 {
		return 1
	}
	if g < 0 {
		return 0
	}
	return g
}

// Pan is -1 for hard left, 1 for hard right, 0 for centre or when the voice
// sits on the listener.
func (l listener) pan(pos Vec3) float32 {
	rel := pos.Sub(l.pos).Normalize()
	right := l.dir.Cross(worldUp).Normalize()
	if right == (Vec3{}) {
		// looking straight up or down
		right = Vec3{X: 1}
	}
	return rel.Dot(right)
}

// gains returns the left and right multipliers for a voice at pos.
func (l listener) gains(pos Vec3, rolloff float32) (float32, float32) {
	g := Attenuation(pos.Sub(l.pos).Len(), rolloff)
	p := l.pan(pos)

	left, right := g, g
	if p > 0 {
		left *= 1 - p
	} else {
		right *= 1 + p
	}
	return left, right
}
