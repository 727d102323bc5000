package vcs

import "runtime/debug"

// Version returns the module version of our build. Builds from a checkout report
// "(devel)" as the module version, so the vcs revision is used for those instead,
// with a -dirty suffix when the tree had local changes.
func Version() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}

	if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}

	var revision string
	var modified bool

	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}

	if revision == "" {
		return bi.Main.Version
	}
	if modified {
		return revision + "-dirty"
	}

	return revision
}
