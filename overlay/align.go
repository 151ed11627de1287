package overlay

// GuideConfig describes the outline the alignment guide draws: the magnifier
// bounds displaced from screen center by the offsets, plus a center crosshair.
type GuideConfig struct {
	Width    int
	Height   int
	XOffset  int
	YOffset  int
	Circular bool
}

// Guide is a full-screen transparent helper window that shows where the
// magnifier will appear, used while tuning offsets in the preferences UI.
type Guide interface {
	Show(cfg GuideConfig) error
	Update(cfg GuideConfig) error
	Hide()
	Destroy()
}

// NewGuide returns the platform alignment guide.
func NewGuide() Guide {
	return newPlatformGuide()
}
