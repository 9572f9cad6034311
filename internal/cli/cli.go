package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"x4tables/internal/config"
	"x4tables/internal/csvout"
	"x4tables/internal/discovery"
	"x4tables/internal/extract"
	"x4tables/internal/locale"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Library file names inside libraries/ directories.
const (
	factionsFile = "factions.xml"
	shipsFile    = "ships.xml"
	sectorsFile  = "mapdefaults.xml"
	waresFile    = "wares.xml"
)

// Output file names inside the output folder.
const (
	factionsOut = "factions_output.csv"
	shipsOut    = "ships_output.csv"
	sectorsOut  = "mapdefaults_output.csv"
	waresOut    = "trade_wares_with_prices.csv"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "x4tables",
		Short: "Export X4: Foundations game data to CSV tables",
		Long: `Extracts faction, ship, map-sector and ware records from an X4 game
folder (base game plus extensions), resolves localized names through the
text catalog, and writes flattened CSV tables.`,
	}

	rootCmd.AddCommand(factionsCmd(cfg))
	rootCmd.AddCommand(shipsCmd(cfg))
	rootCmd.AddCommand(sectorsCmd(cfg))
	rootCmd.AddCommand(waresCmd(cfg))
	rootCmd.AddCommand(allCmd(cfg))
	rootCmd.AddCommand(verifyCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func factionsCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "factions [game-folder]",
		Short: "Export faction records with resolved names",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := gatherOptions(cmd, args, cfg)
			if err != nil {
				return err
			}
			cat, err := loadCatalog(opts.base, opts.language, cfg.ResolveDepth)
			if err != nil {
				return err
			}
			return runFactions(opts, cat)
		},
	}
	addCommonFlags(cmd, cfg)
	addExcludeFlag(cmd, cfg)
	return cmd
}

func shipsCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ships [game-folder]",
		Short: "Export ship records with dynamic faction and tag columns",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := gatherOptions(cmd, args, cfg)
			if err != nil {
				return err
			}
			return runShips(opts)
		},
	}
	addCommonFlags(cmd, cfg)
	return cmd
}

func sectorsCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sectors [game-folder]",
		Short: "Export map cluster and sector records with resolved names",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := gatherOptions(cmd, args, cfg)
			if err != nil {
				return err
			}
			cat, err := loadCatalog(opts.base, opts.language, cfg.ResolveDepth)
			if err != nil {
				return err
			}
			return runSectors(opts, cat)
		},
	}
	addCommonFlags(cmd, cfg)
	addExcludeFlag(cmd, cfg)
	return cmd
}

func waresCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wares [game-folder]",
		Short: "Export tradable ware records with price bands",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := gatherOptions(cmd, args, cfg)
			if err != nil {
				return err
			}
			cat, err := loadCatalog(opts.base, opts.language, cfg.ResolveDepth)
			if err != nil {
				return err
			}
			return runWares(opts, cat)
		},
	}
	addCommonFlags(cmd, cfg)
	return cmd
}

func allCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "all [game-folder]",
		Short: "Export every table over one shared catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := gatherOptions(cmd, args, cfg)
			if err != nil {
				return err
			}
			cat, err := loadCatalog(opts.base, opts.language, cfg.ResolveDepth)
			if err != nil {
				return err
			}
			if err := runFactions(opts, cat); err != nil {
				return err
			}
			if err := runShips(opts); err != nil {
				return err
			}
			if err := runSectors(opts, cat); err != nil {
				return err
			}
			return runWares(opts, cat)
		},
	}
	addCommonFlags(cmd, cfg)
	addExcludeFlag(cmd, cfg)
	return cmd
}

func verifyCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [game-folder]",
		Short: "Check the localization catalog for reference cycles and dangling references",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := gatherOptions(cmd, args, cfg)
			if err != nil {
				return err
			}
			cat, err := loadCatalog(opts.base, opts.language, cfg.ResolveDepth)
			if err != nil {
				return err
			}
			return runVerify(cat)
		},
	}
	addCommonFlags(cmd, cfg)
	return cmd
}

type options struct {
	base     string
	output   string
	language int
	exclude  []*regexp.Regexp
}

func addCommonFlags(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().String("output-folder", cfg.OutputFolder, "Folder to store the output CSV files")
	cmd.Flags().Int("language", cfg.Language, "Localization language id (44 = English)")
}

func addExcludeFlag(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().StringArray("exclude-macro-regex", cfg.ExcludeMacros, "Regular expression patterns to exclude entries by macro")
}

func gatherOptions(cmd *cobra.Command, args []string, cfg *config.Config) (*options, error) {
	base, err := resolveBaseFolder(args)
	if err != nil {
		return nil, err
	}
	if err := discovery.ValidateBase(base); err != nil {
		return nil, err
	}

	opts := &options{base: base}
	opts.output, _ = cmd.Flags().GetString("output-folder")
	opts.language, _ = cmd.Flags().GetInt("language")

	if cmd.Flags().Lookup("exclude-macro-regex") != nil {
		patterns, _ := cmd.Flags().GetStringArray("exclude-macro-regex")
		opts.exclude, err = compileExcludes(patterns)
		if err != nil {
			return nil, err
		}
	}
	return opts, nil
}

// resolveBaseFolder takes the positional argument when given, otherwise
// prompts interactively until a valid directory is entered.
func resolveBaseFolder(args []string) (string, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return strings.TrimSpace(args[0]), nil
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("Please enter the path to X4 game folder: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("read game folder: %w", err)
		}
		folder := trimFolderInput(line)
		if info, statErr := os.Stat(folder); statErr == nil && info.IsDir() {
			return folder, nil
		}
		fmt.Println("Invalid folder path. Please try again.")
	}
}

// trimFolderInput strips interleaved quotes and whitespace from both ends
// of a prompted path, as pasted paths often carry both.
func trimFolderInput(s string) string {
	return strings.Trim(s, "\" \r\n\t")
}

// compileExcludes compiles exclusion patterns anchored at the start of the
// macro, so "demo_" drops "demo_alpha" but keeps "alpha_demo_x".
func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	var compiled []*regexp.Regexp
	for _, p := range patterns {
		re, err := regexp.Compile("^(?:" + p + ")")
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// loadCatalog builds the localization catalog from the base game file plus
// every extension overlay, in load order: extensions override the
// original, the lexically last extension wins.
func loadCatalog(base string, language, depth int) (*locale.Catalog, error) {
	if err := discovery.RequireLocalization(base); err != nil {
		return nil, err
	}

	files := discovery.LanguageFiles(base, language)
	if len(files) == 0 {
		return nil, fmt.Errorf("localization file %q not found", discovery.LanguageFileName(language))
	}

	cat := locale.NewCatalog()
	cat.SetMaxDepth(depth)
	for _, f := range files {
		cat.LoadFile(f.Path)
	}
	return cat, nil
}

func runFactions(opts *options, cat *locale.Catalog) error {
	files := discovery.LibraryFiles(opts.base, factionsFile)
	if len(files) == 0 {
		return nil
	}
	table := extract.Factions(files, cat, opts.exclude)
	if table.Empty() {
		return nil
	}
	writeTable(opts.output, factionsOut, table)
	return nil
}

func runShips(opts *options) error {
	files := discovery.LibraryFiles(opts.base, shipsFile)
	if len(files) == 0 {
		return nil
	}
	table := extract.Ships(files)
	if table.Empty() {
		return nil
	}
	writeTable(opts.output, shipsOut, table)
	return nil
}

func runSectors(opts *options, cat *locale.Catalog) error {
	files := discovery.LibraryFiles(opts.base, sectorsFile)
	if len(files) == 0 {
		return nil
	}
	table := extract.Sectors(files, cat, opts.exclude)
	writeTable(opts.output, sectorsOut, table)
	return nil
}

func runWares(opts *options, cat *locale.Catalog) error {
	files := discovery.LibraryFiles(opts.base, waresFile)
	if len(files) == 0 {
		return nil
	}
	table := extract.Wares(files, cat)
	writeTable(opts.output, waresOut, table)
	return nil
}

// writeTable writes one CSV table. Output failures are logged and the
// table abandoned; the run continues.
func writeTable(dir, name string, t extract.Table) {
	if err := csvout.EnsureDir(dir); err != nil {
		log.Error().Err(err).Str("dir", dir).Msg("Failed to create output directory")
		return
	}
	if err := csvout.Write(filepath.Join(dir, name), t.Header, t.Rows); err != nil {
		log.Error().Err(err).Str("file", name).Msg("Failed to write CSV file")
	}
}

func runVerify(cat *locale.Catalog) error {
	report := cat.Check()

	keys := make([]string, 0, len(report.Missing))
	for key := range report.Missing {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		log.Warn().Str("key", key).Strs("missing", report.Missing[key]).Msg("Entry references missing keys")
	}

	for _, cycle := range report.Cycles {
		log.Error().Strs("keys", cycle).Msg("Reference cycle")
	}

	if n := len(report.Cycles); n > 0 {
		return fmt.Errorf("localization catalog has %d reference cycle(s)", n)
	}

	log.Info().Int("entries", cat.Len()).Int("dangling", len(report.Missing)).Msg("No reference cycles found")
	return nil
}
