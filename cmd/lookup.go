package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"jadwalsholat_backend/internals/features/prayers/schedules/service"
	"jadwalsholat_backend/internals/helpers/apperr"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

func printJSON(w io.Writer, v any) error {
	b, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// withService buka backend, jalankan fn, tutup lagi.
func withService(cmd *cobra.Command, rt *runtime, fn func(ctx context.Context, svc *service.PrayerService) (any, error)) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	b, err := openBackend(ctx, rt.cfg, rt.log)
	if err != nil {
		return err
	}
	defer b.Close()

	out, err := fn(ctx, newPrayerService(b, rt.cfg, rt.log))
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), out)
}

func newProvincesCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "provinces",
		Short: "Daftar provinsi",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, rt, func(ctx context.Context, svc *service.PrayerService) (any, error) {
				return svc.ListProvinces(ctx)
			})
		},
	}
}

func newCitiesCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "cities <province>",
		Short: "Daftar kota dalam satu provinsi (id atau slug)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, rt, func(ctx context.Context, svc *service.PrayerService) (any, error) {
				return svc.ListCities(ctx, args[0])
			})
		},
	}
}

func newCityCmd(rt *runtime) *cobra.Command {
	var withPrayers bool
	cmd := &cobra.Command{
		Use:   "city <idOrSlug>",
		Short: "Detail satu kota",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, rt, func(ctx context.Context, svc *service.PrayerService) (any, error) {
				c, err := svc.GetCity(ctx, args[0])
				if err != nil {
					return nil, err
				}
				if !withPrayers {
					return c.Summary(), nil
				}
				return c, nil
			})
		},
	}
	cmd.Flags().BoolVar(&withPrayers, "prayers", false, "sertakan semua jadwal")
	return cmd
}

func newPrayerCmd(rt *runtime) *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "prayer <city> <date|YYYY-MM>",
		Short: "Jadwal sholat satu tanggal, satu bulan, atau rentang (--to)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			city, period := args[0], args[1]
			return withService(cmd, rt, func(ctx context.Context, svc *service.PrayerService) (any, error) {
				switch {
				case to != "":
					return svc.GetPrayersInRange(ctx, city, period, to)
				case len(period) == 7:
					return svc.GetPrayersForMonth(ctx, city, period)
				}
				return svc.GetPrayerForDate(ctx, city, period)
			})
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "tanggal akhir (inklusif) untuk rentang")
	return cmd
}

func newNextCmd(rt *runtime) *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "next <city>",
		Short: "Waktu sholat berikutnya (default: sekarang)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			when := time.Now()
			if at != "" {
				t, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return apperr.InvalidInput("next", "--at must be RFC3339: %v", err)
				}
				when = t
			}
			return withService(cmd, rt, func(ctx context.Context, svc *service.PrayerService) (any, error) {
				return svc.NextPrayer(ctx, args[0], when)
			})
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "waktu acuan RFC3339")
	return cmd
}
