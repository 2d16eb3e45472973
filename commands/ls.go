package commands

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/osnoire/noiresh/core/proc"
	"github.com/spf13/afero"
)

// Ls lists the case files.
func Ls(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "ls [-alh] [DIR]...",
		Short: "List the case files (the case directory by default).",
	}

	opts := cmd.Flags()
	// -h is taken by human readable sizes.
	cmd.ShowHelp = opts.BoolLong("help", '?', "show this help and exit")
	listAll := opts.Bool('a', "don't ignore entries starting with .")
	longListing := opts.Bool('l', "use a long listing format")
	humanSize := opts.BoolLong("human-readable", 'h', "print human readable sizes")

	return cmd.Run(p, func() int {
		directoriesToList := opts.Args()
		if len(directoriesToList) == 0 {
			directoriesToList = append(directoriesToList, "/")
		}
		sort.Strings(directoriesToList)

		showDirectoryNames := len(directoriesToList) > 1

		sizeFmt := func(bytes int64) string {
			return fmt.Sprintf("%d", bytes)
		}
		if *humanSize {
			sizeFmt = BytesToHuman
		}

		exitCode := 0
		for _, directory := range directoriesToList {
			allPaths, err := afero.ReadDir(p.CaseFiles, directory)
			if err != nil {
				fmt.Fprintf(p.Stderr, "ls: %v\n", err)
				exitCode = 1
				continue
			}

			if showDirectoryNames {
				fmt.Fprintf(p.Stdout, "%s:\n", directory)
			}

			tw := tabwriter.NewWriter(p.Stdout, 0, 0, 1, ' ', 0)
			for _, f := range allPaths {
				if !*listAll && strings.HasPrefix(f.Name(), ".") {
					continue
				}

				if !*longListing {
					fmt.Fprintln(tw, f.Name())
					continue
				}

				// Include time if current year.
				modTime := f.ModTime().Format("Jan _2 2006")
				if f.ModTime().Year() >= time.Now().Year() {
					modTime = f.ModTime().Format("Jan _2 15:04")
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.Mode().String(), sizeFmt(f.Size()), modTime, f.Name())
			}
			tw.Flush()
		}

		return exitCode
	})
}

var _ CommandFunc = Ls

func init() {
	addSubprocessCmd("ls", "Examine the case files", Ls)
}
