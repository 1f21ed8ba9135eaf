package geom

import "math/rand"

// Combo wraps one of the other eight shape families behind a single type,
// so the search can treat "pick any shape" as its own uniform family.
// Every fresh Combo (via Random) independently rolls which family it
// wraps; Mutate only ever perturbs the wrapped shape's own parameters.
type Combo struct {
	inner Shape
}

func randomCombo(w, h int, rng *rand.Rand) *Combo {
	kind := Kind(rng.Intn(int(numKinds - 1)))
	return &Combo{inner: Random(kind, w, h, rng)}
}

func (c *Combo) Kind() Kind { return KindCombo }

func (c *Combo) Copy() Shape {
	return &Combo{inner: c.inner.Copy()}
}

func (c *Combo) Rasterize(w, h int) []Scanline {
	return c.inner.Rasterize(w, h)
}

func (c *Combo) Valid() bool {
	return c.inner.Valid()
}

func (c *Combo) Mutate(w, h int, rng *rand.Rand) {
	c.inner.Mutate(w, h, rng)
}

func (c *Combo) SVG(attrs string) string {
	return c.inner.SVG(attrs)
}

// Inner returns the concrete shape a Combo currently wraps.
func (c *Combo) Inner() Shape {
	return c.inner
}
