package cmd

import (
	"errors"
	"fmt"
	"os"

	"jadwalsholat_backend/internals/configs"
	"jadwalsholat_backend/internals/helpers/apperr"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runtime hasil PersistentPreRunE, dipakai semua subcommand.
type runtime struct {
	cfg configs.Config
	log *zap.Logger
}

type rootOptions struct {
	configFile string
	source     string
	dataFile   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rt := &runtime{}

	root := &cobra.Command{
		Use:   "jadwal",
		Short: "Jadwal sholat per kota: lookup, import, dan export JSON statis",
		Long: `jadwal membaca dataset jadwal sholat (file JSON/YAML, upstream HTTP,
PostgreSQL, atau MongoDB), menjawab lookup per kota/tanggal, dan
memprerender API JSON statis untuk situs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			envSource := configs.LoadEnv()
			cfg, err := configs.LoadConfig(opts.configFile)
			if err != nil {
				return apperr.InvalidInput("config", "%v", err)
			}
			if opts.source != "" {
				cfg.DataSource = opts.source
			}
			if opts.dataFile != "" {
				cfg.DataFile = opts.dataFile
			}
			if err := cfg.Validate(); err != nil {
				return apperr.InvalidInput("config", "%v", err)
			}
			log, err := configs.InitLogger(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			rt.cfg, rt.log = cfg, log
			log.Debug("config loaded", zap.String("env", envSource), zap.String("source", cfg.DataSource))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "path config.yaml (default: cari ./config.yaml)")
	root.PersistentFlags().StringVar(&opts.source, "source", "", "override DATA_SOURCE: file|remote|postgres|mongo")
	root.PersistentFlags().StringVar(&opts.dataFile, "file", "", "override DATA_FILE")

	root.AddCommand(
		newValidateCmd(rt),
		newImportCmd(rt),
		newExportCmd(rt),
		newProvincesCmd(rt),
		newCitiesCmd(rt),
		newCityCmd(rt),
		newPrayerCmd(rt),
		newNextCmd(rt),
	)
	return root
}

// Execute is the entry point called from main.
func Execute() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		var ve *apperr.ValidationError
		if errors.As(err, &ve) {
			for _, is := range ve.Issues {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", is.Path, is.Message)
			}
		}
		_ = configs.Log().Sync()
		os.Exit(exitCode(err))
	}
}

// exitCode: 2 = input / data tidak ditemukan, 3 = sumber data down, 1 = lainnya.
func exitCode(err error) int {
	switch {
	case apperr.IsNotFound(err), apperr.IsInvalidInput(err):
		return 2
	case apperr.IsUpstreamUnavailable(err):
		return 3
	}
	return 1
}
