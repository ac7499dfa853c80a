package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/backmassage/pbrexpress/internal/config"
)

// Input is one batch of candidate paths. Name is the folder for Folder
// mode and "selection" for File mode.
type Input struct {
	Name  string
	Paths []string
}

// selectionName labels the single batch built in File mode.
const selectionName = "selection"

// Discover walks root and returns every regular file at any depth, sorted
// lexicographically for deterministic processing order. Extensions are not
// filtered here: unsupported files are counted by Classify.
func Discover(fsys afero.Fs, root string) ([]string, error) {
	var files []string
	err := afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ResolveInputs turns positional arguments into batches. In Folder mode
// every argument must be a directory and becomes its own batch; in File
// mode all arguments form one batch in the given order. Auto picks Folder
// when every argument is a directory.
func ResolveInputs(fsys afero.Fs, mode config.InputMode, args []string) ([]Input, error) {
	if len(args) == 0 {
		return nil, ErrEmptyInput
	}
	if mode == config.ModeAuto {
		mode = config.ModeFolder
		for _, a := range args {
			if ok, _ := afero.IsDir(fsys, a); !ok {
				mode = config.ModeFile
				break
			}
		}
	}

	if mode == config.ModeFile {
		paths := make([]string, len(args))
		copy(paths, args)
		return []Input{{Name: selectionName, Paths: paths}}, nil
	}

	inputs := make([]Input, 0, len(args))
	for _, dir := range args {
		ok, err := afero.IsDir(fsys, dir)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", dir, err)
		}
		if !ok {
			return nil, fmt.Errorf("input %s: not a directory", dir)
		}
		files, err := Discover(fsys, dir)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", dir, err)
		}
		inputs = append(inputs, Input{Name: filepath.Clean(dir), Paths: files})
	}
	return inputs, nil
}
