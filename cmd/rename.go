/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// Filename normalizer for the papers folder. It shares no logic with
// the solver; it just lives in the same repository.

var (
	sepRE        = regexp.MustCompile(`[\s\x{2013}\x{2014}\x{2212}-]+`)
	underscoreRE = regexp.MustCompile(`_+`)
	indexRE      = regexp.MustCompile(`^(\d+)(?:[\s._-]+)?(.*)$`)
)

// RenameCmd represents the rename command
var RenameCmd = &cobra.Command{
	Use:   "rename [directory]",
	Short: "Normalize and index filenames in a directory",
	Long: `
Replaces whitespace and dash runs in filenames by single underscores,
preserves an existing leading integer index, and assigns the next free
index to unnumbered files in modification-time order. Collisions get a
_N suffix.

thesis rename --dry-run ~/papers`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		recursive, _ := cmd.Flags().GetBool("recursive")
		extList, _ := cmd.Flags().GetString("ext")
		root, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		if _, err = os.Stat(root); err != nil {
			return fmt.Errorf("path does not exist: %s", root)
		}
		exts := make(map[string]bool)
		for _, e := range strings.Split(extList, ",") {
			if e = strings.TrimSpace(strings.ToLower(e)); e != "" {
				exts[e] = true
			}
		}
		return runRename(root, recursive, dryRun, exts)
	},
}

func init() {
	rootCmd.AddCommand(RenameCmd)
	RenameCmd.Flags().Bool("dry-run", false, "show changes without renaming")
	RenameCmd.Flags().Bool("recursive", false, "recurse into subfolders")
	RenameCmd.Flags().String("ext", ".pdf", "comma separated extensions to process, empty for all files")
}

// sanitizeComponent trims a filename component and replaces any run of
// whitespace or dash variants by a single underscore.
func sanitizeComponent(s string) string {
	s = strings.TrimSpace(s)
	s = sepRE.ReplaceAllString(s, "_")
	s = underscoreRE.ReplaceAllString(s, "_")
	return s
}

// splitIndexAndRest splits a leading integer index from a filename stem.
//
//	"12_Paper"  ->  (12, "Paper", true)
//	"Draft"     ->  (0,  "Draft", false)
func splitIndexAndRest(stem string) (index int, rest string, ok bool) {
	m := indexRE.FindStringSubmatch(stem)
	if m == nil {
		return 0, stem, false
	}
	index, err := strconv.Atoi(m[1])
	if err != nil {
		// Index wider than an int, leave the stem alone
		return 0, stem, false
	}
	return index, m[2], true
}

// buildNewFilename constructs the normalized name with the kept or
// newly assigned leading index.
func buildNewFilename(name string, index int) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	_, rest, _ := splitIndexAndRest(stem)
	clean := sanitizeComponent(rest)
	if clean == "" {
		clean = "file"
	}
	return fmt.Sprintf("%d_%s%s", index, clean, ext)
}

// uniqueDest returns a non-colliding sibling path by appending _N
// before the extension.
func uniqueDest(dest string) string {
	if _, err := os.Stat(dest); os.IsNotExist(err) {
		return dest
	}
	ext := filepath.Ext(dest)
	stem := strings.TrimSuffix(dest, ext)
	for i := 1; ; i++ {
		cand := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if _, err := os.Stat(cand); os.IsNotExist(err) {
			return cand
		}
	}
}

func collectFiles(root string, recursive bool, exts map[string]bool) (files []string, err error) {
	err = filepath.Walk(root, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if info.IsDir() {
			if !recursive && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if len(exts) == 0 || exts[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	return
}

type renameEntry struct {
	path  string
	index int
}

// planIndices determines which files keep their index and which get the
// next free one, assigned in modification-time order.
func planIndices(files []string) (numbered, assigned []renameEntry) {
	var (
		maxIdx     int
		unnumbered []string
	)
	for _, p := range files {
		stem := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		if idx, _, ok := splitIndexAndRest(stem); ok {
			if idx > maxIdx {
				maxIdx = idx
			}
			numbered = append(numbered, renameEntry{path: p, index: idx})
		} else {
			unnumbered = append(unnumbered, p)
		}
	}
	sort.SliceStable(numbered, func(i, j int) bool {
		return strings.ToLower(filepath.Base(numbered[i].path)) < strings.ToLower(filepath.Base(numbered[j].path))
	})
	sort.SliceStable(unnumbered, func(i, j int) bool {
		ti, ei := os.Stat(unnumbered[i])
		tj, ej := os.Stat(unnumbered[j])
		if ei != nil || ej != nil {
			return unnumbered[i] < unnumbered[j]
		}
		return ti.ModTime().Before(tj.ModTime())
	})
	next := maxIdx + 1
	for _, p := range unnumbered {
		assigned = append(assigned, renameEntry{path: p, index: next})
		next++
	}
	return
}

func runRename(root string, recursive, dryRun bool, exts map[string]bool) error {
	files, err := collectFiles(root, recursive, exts)
	if err != nil {
		return err
	}
	numbered, assigned := planIndices(files)
	fmt.Printf("Folder: %s\n", root)
	fmt.Printf("Options: recursive=%v, dry-run=%v\n", recursive, dryRun)
	fmt.Printf("Scan: %d file(s) found (%d numbered, %d unnumbered)\n",
		len(files), len(numbered), len(assigned))

	var renamedKept, renamedAssigned int
	apply := func(entries []renameEntry, tag string) error {
		for _, e := range entries {
			newName := buildNewFilename(filepath.Base(e.path), e.index)
			if newName == filepath.Base(e.path) {
				continue
			}
			dest := uniqueDest(filepath.Join(filepath.Dir(e.path), newName))
			if dryRun {
				fmt.Printf("[DRY-RUN] %s %3d | %s  ->  %s\n", tag, e.index, filepath.Base(e.path), filepath.Base(dest))
			} else {
				if err := os.Rename(e.path, dest); err != nil {
					return err
				}
				fmt.Printf("[RENAMED] %s %3d | %s  ->  %s\n", tag, e.index, filepath.Base(e.path), filepath.Base(dest))
			}
			if tag == "keep" {
				renamedKept++
			} else {
				renamedAssigned++
			}
		}
		return nil
	}
	if err = apply(numbered, "keep"); err != nil {
		return err
	}
	if err = apply(assigned, "add"); err != nil {
		return err
	}
	if renamedKept+renamedAssigned == 0 {
		fmt.Println("\nNo changes needed - everything is normalized and indexed.")
	} else {
		fmt.Println("\nSummary:")
		fmt.Printf("  Files renamed (kept existing index): %d\n", renamedKept)
		fmt.Printf("  Files renamed (newly indexed)      : %d\n", renamedAssigned)
	}
	return nil
}
