//go:build !windows

package overlay

type headlessGuide struct {
	cfg     GuideConfig
	visible bool
}

func newPlatformGuide() Guide { return &headlessGuide{} }

func (g *headlessGuide) Show(cfg GuideConfig) error {
	g.cfg = cfg
	g.visible = true
	return nil
}

func (g *headlessGuide) Update(cfg GuideConfig) error {
	g.cfg = cfg
	return nil
}

func (g *headlessGuide) Hide() { g.visible = false }

func (g *headlessGuide) Destroy() { g.visible = false }
