package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/osnoire/noiresh/core/proc"
)

// Touch updates or creates case files.
func Touch(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "touch [OPTION...] FILE...",
		Short: "Update the modification times of case files to now.",
	}

	noCreate := cmd.Flags().BoolLong("no-create", 'c', "don't create files")

	return cmd.Run(p, func() int {
		paths := cmd.Flags().Args()
		if len(paths) == 0 {
			fmt.Fprintln(p.Stderr, "touch: missing file operand")
			return 1
		}

		now := time.Now()

		var anyFailed bool
		for _, path := range paths {
			err := p.CaseFiles.Chtimes(path, now, now)
			switch {
			case errors.Is(err, fs.ErrNotExist) && !*noCreate:
				fd, err := p.CaseFiles.Create(path)
				if err != nil {
					fmt.Fprintf(p.Stderr, "touch: cannot touch %q: %s\n", path, err)
					anyFailed = true
					continue
				}
				fd.Close()
			case errors.Is(err, fs.ErrNotExist) && *noCreate:
				// Not an error.
			case err != nil:
				fmt.Fprintf(p.Stderr, "touch: setting times of %q: %s\n", path, err)
				anyFailed = true
			}
		}

		if anyFailed {
			return 1
		}
		return 0
	})
}

// Mkdir creates directories among the case files.
func Mkdir(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "mkdir [OPTION...] DIRECTORY...",
		Short: "Create directories if they don't exist.",
	}

	makeParents := cmd.Flags().BoolLong("parents", 'p', "make parents if needed")
	verbose := cmd.Flags().BoolLong("verbose", 'v', "print line for every created directory")

	return cmd.Run(p, func() int {
		directories := cmd.Flags().Args()
		if len(directories) == 0 {
			fmt.Fprintln(p.Stderr, "mkdir: missing operand")

			cmd.PrintHelp(p.Stdout)
			return 1
		}

		op := p.CaseFiles.Mkdir
		if *makeParents {
			op = p.CaseFiles.MkdirAll
		}

		anyFailed := false
		for _, dir := range directories {
			err := op(dir, 0755)
			switch {
			case err != nil:
				fmt.Fprintf(p.Stderr, "mkdir: cannot create directory %q: %s\n", dir, err)
				anyFailed = true

			case *verbose:
				fmt.Fprintf(p.Stdout, "mkdir: created directory: %s\n", dir)
			}
		}

		if anyFailed {
			return 1
		}
		return 0
	})
}

// Rm removes case files.
func Rm(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "rm [OPTION...] FILE...",
		Short: "Remove case files or directories.",
	}

	recursive := cmd.Flags().BoolLong("recursive", 'r', "remove directories and their contents recursively")
	force := cmd.Flags().BoolLong("force", 'f', "ignore missing files and arguments")

	return cmd.Run(p, func() int {
		anyFailed := false
		for _, file := range cmd.Flags().Args() {
			stat, statErr := p.CaseFiles.Stat(file)
			switch {
			case errors.Is(statErr, fs.ErrNotExist):
				if !*force {
					fmt.Fprintf(p.Stderr, "rm: can't remove %q: no such file or directory\n", file)
					anyFailed = true
				}
			case statErr != nil:
				fmt.Fprintf(p.Stderr, "rm: can't stat %q: %v\n", file, statErr)
				anyFailed = true
			case stat.IsDir() && !*recursive:
				fmt.Fprintf(p.Stderr, "rm: can't remove %q: is a directory\n", file)
				anyFailed = true
			default:
				if err := p.CaseFiles.RemoveAll(file); err != nil {
					fmt.Fprintf(p.Stderr, "rm: can't remove %q: %v\n", file, err)
					anyFailed = true
				}
			}
		}

		if anyFailed {
			return 1
		}
		return 0
	})
}

// Pwd prints the interpreter's working directory, which cd changes.
func Pwd(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "pwd",
		Short: "Print the name of the current working directory.",
	}

	return cmd.Run(p, func() int {
		wd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(p.Stderr, "pwd: %v\n", err)
			return 1
		}
		fmt.Fprintln(p.Stdout, wd)
		return 0
	})
}

var (
	_ CommandFunc = Touch
	_ CommandFunc = Mkdir
	_ CommandFunc = Rm
	_ CommandFunc = Pwd
)

func init() {
	addSubprocessCmd("touch", "Create or update case files", Touch)
	addSubprocessCmd("mkdir", "Create case directories", Mkdir)
	addSubprocessCmd("rm", "Remove case files", Rm)
	addSubprocessCmd("pwd", "Print the working directory", Pwd)
}
