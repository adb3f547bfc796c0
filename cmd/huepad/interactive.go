package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// interactiveCmd reads subcommands from in, one per line, sharing the loaded
// config and theme between them.
type interactiveCmd struct {
	r  *root
	in io.Reader
}

func (i *interactiveCmd) Run() error {
	fmt.Fprintln(i.r.stdout, "Enter commands (type 'exit' to quit)")
	scanner := bufio.NewScanner(i.in)
	for {
		fmt.Fprint(i.r.stdout, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" {
			break
		}
		args := strings.Fields(line)
		if args[0] == "interactive" {
			continue
		}
		if err := i.r.subcommand().Run(args); err != nil {
			fmt.Fprintln(i.r.stderr, err)
		}
	}
	return scanner.Err()
}
