// Copyright © 2025 The failtrace authors

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quillsoft/failtrace/dump"
	"github.com/quillsoft/failtrace/theme"
	"github.com/quillsoft/failtrace/trace"
)

var (
	renderMaxLength   int
	renderASCII       bool
	renderLang        string
	renderUnannotated bool
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render [flags] DUMPFILE",
	Short: "Render a captured trace dump",
	Long: `Render a captured trace dump as an annotated report.  The dump format
is chosen by extension: .json, or .msgpack/.bin for msgpack.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d, err := dump.Load(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		lang := renderLang
		if lang == "" {
			lang = d.Lang
		}
		opts := []trace.Option{
			trace.WithColor(useColor()),
			trace.WithLang(lang),
			trace.WithMaxLength(viper.GetInt("max-length")),
		}
		if renderASCII {
			opts = append(opts, trace.WithASCII())
		}
		if renderUnannotated {
			opts = append(opts, trace.WithSkipFrame(nil))
			stripScopes(d.Failure, make(map[*dump.Entry]bool))
		}

		f := trace.New(opts...)
		if err := f.WriteFailure(os.Stdout, d.Chain()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

// stripScopes drops recorded variable bindings so every frame renders
// unannotated.
func stripScopes(e *dump.Entry, seen map[*dump.Entry]bool) {
	if e == nil || seen[e] {
		return
	}
	seen[e] = true
	for i := range e.Frames {
		e.Frames[i].Locals = nil
		e.Frames[i].Globals = nil
	}
	stripScopes(e.Cause, seen)
	stripScopes(e.Context, seen)
}

// useColor resolves the persistent --color flag against the terminal.
func useColor() bool {
	switch colorFlag {
	case "always":
		return true
	case "never":
		return false
	default:
		return theme.Supported(os.Stdout)
	}
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().IntVar(&renderMaxLength, "max-length", 128,
		"Maximum length of a formatted value; 0 means unbounded")
	renderCmd.Flags().BoolVarP(&renderASCII, "ascii", "a", false,
		"Restrict output to ASCII glyphs and escapes")
	renderCmd.Flags().StringVar(&renderLang, "lang", "",
		"Lexer used to scan source lines (default: the dump's language)")
	renderCmd.Flags().BoolVar(&renderUnannotated, "unannotated", false,
		"Render every frame without value annotations or frame filtering")

	_ = viper.BindPFlag("max-length", renderCmd.Flags().Lookup("max-length"))
}
