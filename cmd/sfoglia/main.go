// Command sfoglia is a thin host around the theming engine: it lists styles
// and themes, and applies a style+theme combination by publishing the
// rendered stylesheet and recolored assets to an output directory. It
// contains no engine logic.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia"
)

var (
	flagConfig    string
	flagStylesDir string
	flagOutputDir string
	flagLogLevel  string
	flagPrint     bool

	settings Settings
)

func main() {
	initMessages("")

	root := &cobra.Command{
		Use:           "sfoglia",
		Short:         "Resolve style themes and publish stylesheets and recolored icons",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path := flagConfig
			explicit := path != ""
			if !explicit {
				path = defaultSettingsPath()
			}

			var err error
			settings, err = loadSettings(path, explicit)
			if err != nil {
				return err
			}
			if flagStylesDir != "" {
				settings.StylesDir = flagStylesDir
			}
			if flagOutputDir != "" {
				settings.OutputDir = flagOutputDir
			}
			if flagLogLevel != "" {
				settings.LogLevel = flagLogLevel
			}
			if settings.LogFile != "" {
				sfoglia.SetLogPath(settings.LogFile)
			}
			if settings.LogLevel != "" {
				sfoglia.SetLogLevel(settings.LogLevel)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "settings file (TOML)")
	root.PersistentFlags().StringVar(&flagStylesDir, "styles-dir", "", "root directory holding style bundles")
	root.PersistentFlags().StringVar(&flagOutputDir, "output-dir", "", "root directory for generated output")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(stylesCmd(), themesCmd(), applyCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newEngine() *sfoglia.Engine {
	engine := sfoglia.New(nil)
	engine.SetStylesDirPath(settings.StylesDir)
	engine.SetOutputDirPath(settings.OutputDir)
	return engine
}

func stylesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List available styles",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := newEngine()
			styles := engine.Styles()
			if len(styles) == 0 {
				fmt.Println(msg("NoStyles", "No styles found in {{.Dir}}",
					map[string]any{"Dir": settings.StylesDir}))
				return nil
			}
			for _, style := range styles {
				fmt.Println(style)
			}
			return nil
		},
	}
}

func themesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes <style>",
		Short: "List the themes a style offers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := newEngine()
			if !engine.SetCurrentStyle(args[0]) {
				return fmt.Errorf("%s", engine.ErrorString())
			}
			for _, theme := range engine.Themes() {
				fmt.Println(theme)
			}
			return nil
		},
	}
}

func applyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply [style [theme]]",
		Short: "Publish a style+theme combination to the output directory",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			style := settings.Style
			theme := settings.Theme
			if len(args) > 0 {
				style = args[0]
				theme = ""
			}
			if len(args) > 1 {
				theme = args[1]
			}
			if style == "" {
				return fmt.Errorf("%s", msg("NoStyleSelected",
					"no style selected: pass one as an argument or set it in the settings file", nil))
			}

			engine := newEngine()
			if !engine.SetCurrentStyle(style) {
				return fmt.Errorf("%s", engine.ErrorString())
			}

			ok := false
			if theme == "" {
				ok = engine.SetDefaultTheme()
			} else {
				ok = engine.SetCurrentTheme(theme)
			}
			if !ok {
				return fmt.Errorf("%s", engine.ErrorString())
			}

			if !engine.UpdateStylesheet() {
				return fmt.Errorf("%s", engine.ErrorString())
			}

			fmt.Println(msg("Published", "Published {{.Style}}/{{.Theme}} to {{.Out}}", map[string]any{
				"Style": engine.CurrentStyle(),
				"Theme": engine.CurrentTheme(),
				"Out":   engine.CurrentStyleOutputPath(),
			}))
			if flagPrint {
				fmt.Print(engine.Stylesheet())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&flagPrint, "print", false, "print the rendered stylesheet to stdout")
	return cmd
}
