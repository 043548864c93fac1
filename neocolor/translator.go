package neocolor

// Translator turns RGB565 colors into native colors of one model.
//
// A pass-through color overrides every translation until it is cleared: the
// stored value is returned verbatim, with no gamma. Drawing code that blends
// with a background color only ever gets the solid pass-through color back.
type Translator[C comparable] struct {
	model Model[C]

	passThru   C
	passThruOn bool
}

func NewTranslator[C comparable](m Model[C]) *Translator[C] {
	return &Translator[C]{model: m}
}

func (t *Translator[C]) Model() Model[C] { return t.model }

// Translate returns the native color for c, or the pass-through color when set.
func (t *Translator[C]) Translate(c uint16) C {
	if t.passThruOn {
		return t.passThru
	}
	return ExpandTo(t.model, c)
}

func (t *Translator[C]) SetPassThrough(c C) {
	t.passThru = c
	t.passThruOn = true
}

// SetPassThroughPacked sets pass-through from packed 0x00RRGGBB.
func (t *Translator[C]) SetPassThroughPacked(v uint32) {
	t.SetPassThrough(Unpack(t.model, v))
}

func (t *Translator[C]) ClearPassThrough() {
	t.passThruOn = false
}

// PassThrough reports the stored override and whether it is active.
func (t *Translator[C]) PassThrough() (C, bool) {
	return t.passThru, t.passThruOn
}
