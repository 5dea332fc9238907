package config

// Config holds the classification rules applied when the synchronizer walks
// the host UI tree at startup. Anything not named here falls into the default
// group (commands that require an unlocked document), so host UI items added
// in future host versions are governed automatically instead of being left
// uncontrolled.
type Config struct {
	// Sentinel names the tray-menu item whose enabled flag the host itself
	// maintains as "at least one document is open". The item is read and
	// subscribed to, never written.
	Sentinel string `yaml:"sentinel"`

	// Toolbar names the host toolbar whose items are governed.
	Toolbar string `yaml:"toolbar"`

	// Containers maps a container name (tray, menu group, toolbar) to the
	// items explicitly routed away from the default group.
	Containers map[string]ContainerRules `yaml:"containers"`
}

// ContainerRules lists the items of one container that do not follow the
// default classification.
type ContainerRules struct {
	// Workspace items stay usable while no document is open at all.
	Workspace []string `yaml:"workspace"`

	// Ignored items are never touched by the synchronizer.
	Ignored []string `yaml:"ignored"`
}
