package main

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"runtime/debug"

	"golang.org/x/term"
	"mvdan.cc/sh/v3/pattern"
)

// compilePattern translates a shell glob to an anchored regular expression.
// The result must match the whole repository name, so "bdtemp*" never
// matches "xbdtemp1". A * crosses path separators, as in the shell.
func compilePattern(glob string) (*regexp.Regexp, error) {
	expr, err := pattern.Regexp(glob, 0)
	if err != nil {
		return nil, err
	}
	return regexp.Compile("^" + expr + "$")
}

func filterRegex(ss []string, regex *regexp.Regexp) []string {
	var matched []string
	for _, s := range ss {
		if regex.MatchString(s) {
			matched = append(matched, s)
		}
	}
	return matched
}

func getCommit() string {
	var commit, dirty string

	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			switch {
			case setting.Key == "vcs.revision":
				commit = setting.Value
			case setting.Key == "vcs.modified":
				dirty = "-dirty"
			}
		}
	}

	return commit + dirty
}

func getPass(prompt string, args ...interface{}) string {
	fmt.Fprintf(os.Stderr, prompt, args...)

	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprintln(os.Stderr)

	return string(pass)
}
