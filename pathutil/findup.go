package pathutil

// FileInParents walks from the path towards the root and returns the first
// ancestor (or the path itself) that is a regular file, i.e. the file
// blocking the path from being created as a directory tree. The second
// return is false when nothing blocks the path.
func (p Path) FileInParents() (Path, bool) {
	path := p.Absolute()
	for {
		if path.IsFile() {
			return path, true
		}
		if path.IsDir() {
			return "", false
		}
		parent := path.Parent()
		if parent == path {
			return "", false
		}
		path = parent
	}
}

// FindUp searches for name in the path's directory and each ancestor. With
// dir set it matches directories instead of files. It returns the first
// match, or with uppermost the match closest to the root, and false when
// nothing matched.
func (p Path) FindUp(name string, dir, uppermost bool) (Path, bool) {
	start := p.ToParent().Absolute()
	var latest Path
	found := false
	for {
		candidate := start.Join(name)
		match := candidate.IsFile()
		if dir {
			match = candidate.IsDir()
		}
		if match {
			if !uppermost {
				return candidate, true
			}
			latest = candidate
			found = true
		}
		parent := start.Parent()
		if parent == start {
			return latest, found
		}
		start = parent
	}
}
