package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mde-pach/showkit/pkg/meta"
)

const maxWidth = 80

// printComponent writes a human-readable component summary.
func printComponent(w io.Writer, c *meta.ComponentDescriptor, showExamples bool) {
	fmt.Fprintf(w, "%s  (%s)\n", c.Name, c.FilePath)

	if c.Description != "" {
		fmt.Fprintln(w)
		printWrapped(w, c.Description, 0, maxWidth)
	}

	fmt.Fprintln(w)
	printPropsSection(w, c.Props)

	fmt.Fprintln(w)
	if c.AcceptsChildren {
		fmt.Fprintln(w, "Children  accepted")
	} else {
		fmt.Fprintln(w, "Children  (none)")
	}

	fmt.Fprintln(w)
	if len(c.Wrappers) == 0 {
		fmt.Fprintln(w, "Wrappers  (none)")
	} else {
		fmt.Fprintln(w, "Wrappers  (outermost first)")
		for _, wr := range c.Wrappers {
			line := "  " + wr.Name
			if len(wr.DefaultProps) > 0 {
				keys := make([]string, 0, len(wr.DefaultProps))
				for k := range wr.DefaultProps {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				pairs := make([]string, 0, len(keys))
				for _, k := range keys {
					pairs = append(pairs, fmt.Sprintf("%s=%q", k, wr.DefaultProps[k]))
				}
				line += "  " + strings.Join(pairs, " ")
			}
			fmt.Fprintln(w, line)
		}
	}

	if c.Usage != nil {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Usage  direct %d, indirect %d, total %d\n",
			c.Usage.Direct, c.Usage.Indirect, c.Usage.Total)
	}

	if showExamples {
		fmt.Fprintln(w)
		if len(c.Examples) == 0 {
			fmt.Fprintln(w, "Examples  (none)")
		} else {
			fmt.Fprintln(w, "Examples")
			for _, ex := range c.Examples {
				fmt.Fprintln(w)
				fmt.Fprintln(w, "  "+strings.Repeat("-", 40))
				for _, line := range strings.Split(ex, "\n") {
					fmt.Fprintf(w, "  %s\n", line)
				}
			}
		}
	}
}

// printPropsSection renders the props table with dynamic column widths.
func printPropsSection(w io.Writer, props []meta.PropDescriptor) {
	if len(props) == 0 {
		fmt.Fprintln(w, "Props  (none)")
		return
	}

	fmt.Fprintln(w, "Props")

	nameW := len("NAME")
	typeW := len("TYPE")
	defW := len("DEFAULT")
	for _, p := range props {
		if len(p.Name) > nameW {
			nameW = len(p.Name)
		}
		if len(p.Type) > typeW {
			typeW = len(p.Type)
		}
		def := p.Default
		if def == "" {
			def = "-"
		}
		if len(def) > defW {
			defW = len(def)
		}
	}

	sepLen := nameW + typeW + 5 + defW + 4
	fmt.Fprintf(w, "  %-*s  %-*s  %-3s  %-*s\n", nameW, "NAME", typeW, "TYPE", "REQ", defW, "DEFAULT")
	fmt.Fprintf(w, "  %s\n", strings.Repeat("-", sepLen))

	for _, p := range props {
		req := "no"
		if p.Required {
			req = "yes"
		}
		def := p.Default
		if def == "" {
			def = "-"
		}
		fmt.Fprintf(w, "  %-*s  %-*s  %-3s  %-*s\n",
			nameW, p.Name, typeW, p.Type, req, defW, def)

		pad := strings.Repeat(" ", nameW)
		if p.Description != "" {
			fmt.Fprintf(w, "  %s  %s\n", pad, p.Description)
		}
		if len(p.Values) > 0 {
			fmt.Fprintf(w, "  %s  values: %s\n", pad, strings.Join(p.Values, " | "))
		}
		if p.Kind != meta.RenderNone {
			fmt.Fprintf(w, "  %s  renders: %s\n", pad, p.Kind)
		}
	}
}

// printWrapped writes text word-wrapped at width with a left indent.
func printWrapped(w io.Writer, text string, indent, width int) {
	words := strings.Fields(text)
	prefix := strings.Repeat(" ", indent)
	line := prefix
	for _, word := range words {
		if len(line)+len(word)+1 > width && line != prefix {
			fmt.Fprintln(w, line)
			line = prefix + word
			continue
		}
		if line == prefix {
			line += word
		} else {
			line += " " + word
		}
	}
	if line != prefix {
		fmt.Fprintln(w, line)
	}
}
