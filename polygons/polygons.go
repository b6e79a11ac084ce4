// Copyright (c) 2026 The star-folding authors
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package polygons provides ready-made star polygon definitions in the
// clock-direction step language, for examples and tests. Edges turning by
// 60° would make neighboring inward vertices coincide, so the definitions
// here stick to 30° turns.
package polygons

// Dodecagon walks all twelve clock directions once, counter-clockwise.
const Dodecagon = `
a 4
b 3
c 2
d 1
e 12
f 11
g 10
h 9
i 8
j 7
k 6
l 5
`

// Dodecagon2 is the dodecagon scaled by two, using two steps per edge.
const Dodecagon2 = `
a 4 4
b 3 3
c 2 2
d 1 1
e 12 12
f 11 11
g 10 10
h 9 9
i 8 8
j 7 7
k 6 6
l 5 5
`

// Elongated is the dodecagon stretched by one extra unit along the first
// axis on the two opposing horizontal edges.
const Elongated = `
a 4 4
b 3
c 2
d 1
e 12
f 11
g 10 10
h 9
i 8
j 7
k 6
l 5
`

// All maps the definition names to their texts.
var All = map[string]string{
	"dodecagon":  Dodecagon,
	"dodecagon2": Dodecagon2,
	"elongated":  Elongated,
}
