package git

import "bytes"

func splitNUL(raw []byte) []string {
	var out []string
	for _, chunk := range bytes.Split(raw, []byte{0}) {
		if len(chunk) == 0 {
			continue
		}
		out = append(out, DecodeLossy(chunk))
	}
	return out
}

// parseNameStatus parses `git diff --name-status -z` output. Renames and copies
// carry two paths; added and deleted files have one side missing. Unknown
// status letters take one path and are listed as modified.
func parseNameStatus(raw []byte, baseSource, headSource ContentSource) []Descriptor {
	tokens := splitNUL(raw)
	var files []Descriptor

	for i := 0; i < len(tokens); {
		token := tokens[i]
		i++

		status, err := ParseStatus(token)
		if err != nil {
			status = StatusModified
		}

		switch status {
		case StatusRenamed, StatusCopied:
			if i+1 >= len(tokens) {
				return files
			}
			oldPath, newPath := tokens[i], tokens[i+1]
			i += 2
			files = append(files, Descriptor{
				Status:      status,
				RawStatus:   token,
				DisplayPath: oldPath + " -> " + newPath,
				BasePath:    oldPath,
				HeadPath:    newPath,
				BaseSource:  baseSource,
				HeadSource:  headSource,
			})
			continue
		}

		if i >= len(tokens) {
			return files
		}
		path := tokens[i]
		i++

		d := Descriptor{
			Status:      status,
			RawStatus:   token,
			DisplayPath: path,
			BasePath:    path,
			HeadPath:    path,
			BaseSource:  baseSource,
			HeadSource:  headSource,
		}
		switch status {
		case StatusAdded, StatusUntracked:
			d.BasePath = ""
			d.BaseSource = SourceMissing
		case StatusDeleted:
			d.HeadPath = ""
			d.HeadSource = SourceMissing
		case StatusModified:
		}
		files = append(files, d)
	}

	return files
}

// appendUntracked adds untracked working-tree files not already listed
func appendUntracked(files []Descriptor, paths []string) []Descriptor {
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		if f.HeadPath != "" {
			seen[f.HeadPath] = true
		} else {
			seen[f.BasePath] = true
		}
	}

	for _, path := range paths {
		if seen[path] {
			continue
		}
		seen[path] = true
		files = append(files, Descriptor{
			Status:      StatusUntracked,
			RawStatus:   "??",
			DisplayPath: path,
			HeadPath:    path,
			BaseSource:  SourceMissing,
			HeadSource:  SourceWorkingTree,
		})
	}
	return files
}
