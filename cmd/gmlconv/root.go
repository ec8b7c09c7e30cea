package main

import (
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/beetlebugorg/gml/pkg/gml"
)

// app holds the state shared by the subcommands of one invocation.
type app struct {
	cfg *viper.Viper
	log *logrus.Logger
	out io.Writer
}

// crsConfig is one entry of the "crs" configuration list.
type crsConfig struct {
	Code      string `mapstructure:"code"`
	Proj4     string `mapstructure:"proj4"`
	Dimension int    `mapstructure:"dimension"`
}

// substitutionConfig is one entry of the "substitutions" configuration
// list: an application element standing in for a GML geometry element.
type substitutionConfig struct {
	Namespace  string   `mapstructure:"namespace"`
	Element    string   `mapstructure:"element"`
	Base       string   `mapstructure:"base"`
	Properties []string `mapstructure:"properties"`
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{
		cfg: viper.New(),
		log: logrus.New(),
		out: out,
	}
	a.log.SetOutput(errOut)

	root := &cobra.Command{
		Use:   "gmlconv",
		Short: "Convert and inspect GML geometry documents.",
		Long: `gmlconv reads GML 2.1.2, 3.0.1, 3.1.1 and 3.2.1 geometry documents.
It converts between GML versions and coordinate reference systems, prints
document summaries and well-known text, and validates geometries and
xlink references.

Configuration can be given on the command line, in a configuration file
(gmlconv.yaml, gmlconv.toml or gmlconv.json in the working directory or in
$HOME/.config/gmlconv, or the file named by --config) or through environment
variables in the format 'GMLCONV_var', e.g. GMLCONV_DEFAULT_SRS.

A configuration file may also declare extra coordinate reference systems
and application-schema elements:

  crs:
    - code: EPSG:2056
      proj4: "+proj=somerc +lat_0=46.95 +lon_0=7.43 +k_0=1 +x_0=2600000 +y_0=1200000 +ellps=bessel +units=m +no_defs"
  substitutions:
    - namespace: urn:example:city
      element: Footprint
      base: Polygon
      properties: [area]

Substituted elements are read as GML 3.1.1 unless schema-version says
otherwise.`,
		SilenceUsage:      true,
		DisableAutoGenTag: true,
		PersistentPreRunE: func(*cobra.Command, []string) error { return a.setConfig() },
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.String("config", "", "configuration file")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.String("default-srs", "", "CRS of geometries without an srsName")
	flags.Int("dimension", 2, "coordinate dimension when neither srsDimension nor the CRS give one")
	flags.Int("workers", runtime.NumCPU(), "documents processed concurrently")
	for _, name := range []string{"config", "log-level", "default-srs", "dimension", "workers"} {
		a.cfg.BindPFlag(name, flags.Lookup(name))
	}

	a.cfg.SetEnvPrefix("GMLCONV")
	a.cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.cfg.AutomaticEnv()

	root.AddCommand(a.convertCmd(), a.infoCmd(), a.queryCmd(), a.wktCmd(), a.validateCmd())
	return root
}

// setConfig reads the configuration file, if there is one, and applies the
// log level.
func (a *app) setConfig() error {
	if path := a.cfg.GetString("config"); path != "" {
		a.cfg.SetConfigFile(path)
		if err := a.cfg.ReadInConfig(); err != nil {
			return errors.Wrap(err, "gmlconv: problem reading configuration file")
		}
	} else {
		a.cfg.SetConfigName("gmlconv")
		a.cfg.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			a.cfg.AddConfigPath(filepath.Join(home, ".config", "gmlconv"))
		}
		if err := a.cfg.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return errors.Wrap(err, "gmlconv: problem reading configuration file")
			}
		}
	}

	level, err := logrus.ParseLevel(a.cfg.GetString("log-level"))
	if err != nil {
		return errors.Wrap(err, "gmlconv")
	}
	a.log.SetLevel(level)
	if used := a.cfg.ConfigFileUsed(); used != "" {
		a.log.WithField("file", used).Debug("Using configuration file")
	}
	return nil
}

// resolver returns the built-in CRS definitions extended by the "crs"
// configuration list.
func (a *app) resolver() (*gml.CRSResolver, error) {
	r := gml.NewCRSResolver()
	var defs []crsConfig
	if err := a.cfg.UnmarshalKey("crs", &defs); err != nil {
		return nil, errors.Wrap(err, "invalid crs configuration")
	}
	for _, d := range defs {
		if err := r.Register(gml.CRSDefinition{Code: d.Code, Proj4: d.Proj4, Dimension: d.Dimension}); err != nil {
			return nil, errors.Wrapf(err, "invalid crs configuration for %s", d.Code)
		}
		a.log.WithField("crs", d.Code).Debug("Registered CRS")
	}
	return r, nil
}

// hierarchy returns the application-schema hierarchy declared by the
// "substitutions" configuration list, or nil when there is none.
func (a *app) hierarchy() (gml.Hierarchy, error) {
	var subs []substitutionConfig
	if err := a.cfg.UnmarshalKey("substitutions", &subs); err != nil {
		return nil, errors.Wrap(err, "invalid substitutions configuration")
	}
	if len(subs) == 0 {
		return nil, nil
	}
	version := gml.GML31
	if v := a.cfg.GetString("schema-version"); v != "" {
		parsed, err := gml.ParseVersion(v)
		if err != nil {
			return nil, err
		}
		version = parsed
	}
	h := gml.NewHierarchy(version)
	for _, s := range subs {
		name := xml.Name{Space: s.Namespace, Local: s.Element}
		if err := h.Substitute(name, s.Base); err != nil {
			return nil, errors.Wrapf(err, "invalid substitution for %s", s.Element)
		}
		if len(s.Properties) > 0 {
			props := make([]xml.Name, len(s.Properties))
			for i, p := range s.Properties {
				props[i] = xml.Name{Space: s.Namespace, Local: p}
			}
			h.DeclareProperties(name, props...)
		}
	}
	return h, nil
}

// parseOptions builds the parse options from the configuration.
func (a *app) parseOptions() (gml.ParseOptions, error) {
	opts := gml.DefaultParseOptions()
	opts.DefaultCRS = a.cfg.GetString("default-srs")
	opts.DefaultDimension = a.cfg.GetInt("dimension")
	opts.Logger = a.log

	r, err := a.resolver()
	if err != nil {
		return opts, err
	}
	opts.CRSResolver = r
	h, err := a.hierarchy()
	if err != nil {
		return opts, err
	}
	opts.Hierarchy = h
	return opts, nil
}

// loadOptions builds the batch options from the configuration.
func (a *app) loadOptions(parse gml.ParseOptions) gml.LoadOptions {
	opts := gml.DefaultLoadOptions()
	opts.Workers = a.cfg.GetInt("workers")
	opts.Parse = parse
	opts.Logger = a.log
	return opts
}

// inputs expands directories among args into the GML documents they hold.
func inputs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, errors.Wrap(err, "invalid input")
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		found, err := gml.DiscoverDocuments(arg)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	if len(paths) == 0 {
		return nil, errors.New("no GML documents found")
	}
	return paths, nil
}
