// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

// Formatter renders a command result to an output stream
type Formatter interface {
	Format(w io.Writer, data interface{}) error
}

// FormatterFunc makes a plain function usable as a Formatter
type FormatterFunc func(io.Writer, interface{}) error

// Format renders the data to w
func (f FormatterFunc) Format(w io.Writer, data interface{}) error {
	return f(w, data)
}

var (
	// activeCmd is the command cobra dispatched to, recorded so print
	// resolves the format flag of the command actually running
	activeCmd *cobra.Command

	outputFormats = make(map[*cobra.Command]*string)
	extraFormats  = make(map[*cobra.Command]map[string]Formatter)

	sharedFormatters = map[string]Formatter{
		"json": FormatterFunc(func(w io.Writer, data interface{}) error {
			b, err := jsoniter.MarshalIndent(data, "", "  ")
			if err != nil {
				return err
			}
			_, err = w.Write(append(b, '\n'))
			return err
		}),
		"yaml": FormatterFunc(func(w io.Writer, data interface{}) error {
			b, err := yaml.Marshal(data)
			if err != nil {
				return err
			}
			_, err = w.Write(b)
			return err
		}),
	}
)

// addFormatFlag registers the output format flag of a command, together with
// the command specific formatters beyond the shared json and yaml ones
func addFormatFlag(cmd *cobra.Command, defaultFormat string, extra ...map[string]Formatter) error {
	if defaultFormat == "" {
		defaultFormat = "json"
	}
	for _, formatters := range extra {
		for name, formatter := range formatters {
			if extraFormats[cmd] == nil {
				extraFormats[cmd] = make(map[string]Formatter)
			}
			extraFormats[cmd][name] = formatter
		}
	}
	selected := defaultFormat
	outputFormats[cmd] = &selected
	cmd.Flags().StringVarP(outputFormats[cmd], "output", "o", defaultFormat,
		"The output format to use: json, yaml, ...")
	return nil
}

// print renders data on stdout with the format selected for the running command
func print(data interface{}) error {
	format := "json"
	if selected, ok := outputFormats[activeCmd]; ok {
		format = *selected
	}
	formatter, ok := extraFormats[activeCmd][format]
	if !ok {
		formatter, ok = sharedFormatters[format]
	}
	if !ok {
		return fmt.Errorf("unknown output format %q", format)
	}
	return formatter.Format(os.Stdout, data)
}
