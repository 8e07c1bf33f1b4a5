/*
Copyright © 2026 the SDR authors.
This file is part of SDR.

SDR is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

SDR is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with SDR.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package sdrutil holds the sdr command-line interface and the
// reader configuration file format.
package sdrutil

import (
	"fmt"
	"os"
	"strings"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/skratchdot/open-golang/open"
	"github.com/spatialmodel/sdr"
	"github.com/spatialmodel/sdr/store"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to the commands.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "ReaderConfig",
			usage: `
              ReaderConfig is the path to the TOML or YAML file that describes
              the file types, file keys, navigations and datasets the reader
              knows about. It can include environment variables.`,
			defaultVal: "${GOPATH}/src/github.com/spatialmodel/sdr/cmd/sdr/viirs_sdr.toml",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "start",
			usage: `
              start selects the granules that cover this time, given in the
              form 2006-01-02T15:04:05Z. With end, it selects the granules
              that start or end between start and end.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "end",
			usage: `
              end is the end of the time window granules are selected from.
              It requires start.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "footprint",
			usage: `
              footprint is the path to a GeoJSON file holding a longitude-latitude
              polygon. Only granules whose G-Ring boundary intersects it are read,
              and start and end are ignored.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "datasets",
			usage: `
              datasets lists the names of the datasets to load.`,
			shorthand:  "d",
			defaultVal: []string{"M15"},
			flagsets:   []*pflag.FlagSet{loadCmd.Flags(), quicklookCmd.Flags()},
		},
		{
			name: "calibration",
			usage: `
              calibration lists calibration levels in order of preference,
              for example 'bt,reflectance'. If it is empty the preference in
              ReaderConfig is used.`,
			shorthand:  "c",
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{loadCmd.Flags(), quicklookCmd.Flags()},
		},
		{
			name: "expr",
			usage: `
              expr is an expression of loaded datasets to evaluate and
              summarize, for example 'M15 - 273.15'.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{loadCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path to the output file. For info it is an
              optional .xlsx spreadsheet; for quicklook a .png image, and for
              footprints a shapefile. It can include environment variables.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{infoCmd.Flags(), quicklookCmd.Flags(), footprintsCmd.Flags()},
		},
		{
			name: "open",
			usage: `
              open specifies whether to open the quicklook image in the
              default viewer after it is written.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{quicklookCmd.Flags()},
		},
		{
			name: "CacheSize",
			usage: `
              CacheSize is the number of granule files kept open at once.`,
			defaultVal: 16,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Retries",
			usage: `
              Retries is the number of times opening a file is retried after
              a transient failure, such as on a network file system.`,
			defaultVal: 3,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel is the level of log messages written to standard error:
              one of debug, info, warning or error.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("SDR")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(infoCmd)
	Root.AddCommand(loadCmd)
	Root.AddCommand(quicklookCmd)
	Root.AddCommand(footprintsCmd)
}

// openFile opens granule files. It is replaced in tests.
var openFile store.Opener = store.Open

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("sdr: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "sdr",
	Short: "A reader for satellite sensor data records.",
	Long: `sdr reads calibrated swaths from sequences of satellite sensor data
record (SDR) granules, such as those from the VIIRS instrument. Give the
granule files, including any geolocation files, as arguments to the
subcommands specified below.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'SDR_var' where 'var' is the
name of the variable to be set. Refer to https://github.com/spf13/viper for
additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of sdr.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "SDR v%s\n", sdr.Version)
	},
	DisableAutoGenTag: true,
}

var infoCmd = &cobra.Command{
	Use:   "info [files]",
	Short: "Describe granules",
	Long: `info lists the selected granules of each file type with their times,
orbits and platform, and counts the fill values in each of their
calibrated variables. If OutputFile ends in .xlsx the table is also
written to a spreadsheet.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, closer, err := newReader(args)
		if err != nil {
			return err
		}
		defer closer()
		rows, err := Info(r)
		if err != nil {
			return err
		}
		if err := writeInfo(cmd.OutOrStdout(), rows); err != nil {
			return err
		}
		if f := os.ExpandEnv(Cfg.GetString("OutputFile")); strings.HasSuffix(strings.ToLower(f), ".xlsx") {
			return writeInfoXLSX(f, rows)
		}
		return nil
	},
	DisableAutoGenTag: true,
}

var loadCmd = &cobra.Command{
	Use:   "load [files]",
	Short: "Load datasets",
	Long: `load loads the datasets listed in the datasets option and prints a
summary of each. If expr is given it is evaluated over the loaded datasets
and summarized too.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		names, calibration, err := datasetOptions()
		if err != nil {
			return err
		}
		r, closer, err := newReader(args)
		if err != nil {
			return err
		}
		defer closer()
		return Load(cmd.OutOrStdout(), r, names, calibration, Cfg.GetString("expr"))
	},
	DisableAutoGenTag: true,
}

var quicklookCmd = &cobra.Command{
	Use:   "quicklook [files]",
	Short: "Render a dataset as an image",
	Long: `quicklook loads the first dataset listed in the datasets option and
writes it to OutputFile as a PNG image, one pixel per sample. Invalid
samples are transparent.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		names, calibration, err := datasetOptions()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			return fmt.Errorf("sdr: quicklook needs a dataset")
		}
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"), ".png")
		if err != nil {
			return err
		}
		r, closer, err := newReader(args)
		if err != nil {
			return err
		}
		defer closer()
		if err := Quicklook(r, names[0], calibration, outputFile); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outputFile)
		if Cfg.GetBool("open") {
			return open.Run(outputFile)
		}
		return nil
	},
	DisableAutoGenTag: true,
}

var footprintsCmd = &cobra.Command{
	Use:   "footprints [files]",
	Short: "Write granule boundaries to a shapefile",
	Long: `footprints writes the G-Ring boundary of each selected granule to the
shapefile OutputFile, with the granule file type, file name, times and
beginning orbit as attributes.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"), ".shp")
		if err != nil {
			return err
		}
		r, closer, err := newReader(args)
		if err != nil {
			return err
		}
		defer closer()
		n, err := Footprints(r, outputFile)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d footprints to %s\n", n, outputFile)
		return nil
	},
	DisableAutoGenTag: true,
}

// newReader creates a reader for filenames from the current
// configuration. The returned function releases the open files.
func newReader(filenames []string) (*sdr.Reader, func(), error) {
	log := logrus.New()
	log.Out = os.Stderr
	level, err := logrus.ParseLevel(Cfg.GetString("LogLevel"))
	if err != nil {
		return nil, nil, fmt.Errorf("sdr: LogLevel: %v", err)
	}
	log.SetLevel(level)

	cfg, err := ReadConfig(Cfg.GetString("ReaderConfig"))
	if err != nil {
		return nil, nil, err
	}
	sel, err := parseSelection(Cfg.GetString("start"), Cfg.GetString("end"), Cfg.GetString("footprint"))
	if err != nil {
		return nil, nil, err
	}
	retries := Cfg.GetInt("Retries")
	if retries < 0 {
		return nil, nil, fmt.Errorf("sdr: Retries=%d but should be >= 0", retries)
	}
	cache := store.NewCache(store.Retry(openFile, store.ExponentialBackOff(uint64(retries)), log), Cfg.GetInt("CacheSize"))

	r, err := sdr.NewReader(cfg, expandStringSlice(filenames),
		sdr.WithSelection(sel),
		sdr.WithOpener(cache.Open),
		sdr.WithLogger(log),
	)
	if err != nil {
		cache.Close()
		return nil, nil, err
	}
	return r, func() { cache.Close() }, nil
}

// datasetOptions returns the dataset names and calibration preference
// from the configuration.
func datasetOptions() (names, calibration []string, err error) {
	if names, err = stringSlice("datasets"); err != nil {
		return nil, nil, err
	}
	if calibration, err = stringSlice("calibration"); err != nil {
		return nil, nil, err
	}
	return names, calibration, nil
}

// stringSlice returns a list option, which may have been set from a
// flag, a configuration file or an environment variable.
func stringSlice(name string) ([]string, error) {
	v := Cfg.Get(name)
	if v == nil {
		return nil, nil
	}
	s, err := cast.ToStringSliceE(v)
	if err != nil {
		return nil, fmt.Errorf("sdr: reading '%s': %v", name, err)
	}
	return s, nil
}

func expandStringSlice(s []string) []string {
	o := make([]string, len(s))
	for i, v := range s {
		o[i] = os.ExpandEnv(v)
	}
	return o
}

// checkOutputFile checks that an output file name was given and
// adds ext to it if it has no extension.
func checkOutputFile(f, ext string) (string, error) {
	if f == "" {
		return "", fmt.Errorf(`you need to specify an output file configuration variable (for example: OutputFile="output%s")`, ext)
	}
	f = os.ExpandEnv(f)
	if !strings.Contains(f[strings.LastIndex(f, "/")+1:], ".") {
		f += ext
	}
	return f, nil
}
