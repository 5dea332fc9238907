package config

// Default returns the compiled-in classification rules. They match the host
// UI shipped with current host versions; a rules file can extend or replace
// them for hosts with customized menus.
func Default() Config {
	return Config{
		Sentinel: "Close All Documents",
		Toolbar:  "standard",
		Containers: map[string]ContainerRules{
			"tray": {
				Workspace: []string{"New Document", "Open Document", "Import Archive"},
				Ignored:   []string{"Settings", "Check for Updates", "About", "Exit"},
			},
			"File": {
				Workspace: []string{"New Document", "Open Document", "Recent Documents"},
				Ignored:   []string{"Exit"},
			},
			"Help": {
				Ignored: []string{"Documentation", "Report a Problem", "About"},
			},
			"standard": {
				Workspace: []string{"New Document", "Open Document"},
			},
		},
	}
}
