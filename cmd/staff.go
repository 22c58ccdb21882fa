package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/nordlink/regsync/internal/model"
)

var staffFile string

var staffCmd = &cobra.Command{
	Use:   "staff <org-page-id>",
	Short: "Apply a scraped staff list to the Notion contacts database",
	Long:  "Reads a YAML list of people and reconciles it against the contacts linked to the given company page. Role handovers supersede the previous holder instead of deleting them.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		people, err := readStaffFile(staffFile)
		if err != nil {
			return err
		}

		env, err := initSyncEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		svc, err := initStaff(env)
		if err != nil {
			return err
		}

		report, err := svc.Apply(ctx, args[0], people)
		if err != nil {
			return eris.Wrap(err, "apply staff")
		}

		if report.Failed > 0 {
			zap.L().Warn(report.Message())
		} else {
			zap.L().Info(report.Message())
		}
		return nil
	},
}

func init() {
	staffCmd.Flags().StringVar(&staffFile, "file", "staff.yaml", "YAML file listing people (name, role, email, phone)")
	rootCmd.AddCommand(staffCmd)
}

func readStaffFile(path string) ([]model.Person, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read staff file %s", path)
	}

	var people []model.Person
	if err := yaml.Unmarshal(data, &people); err != nil {
		return nil, eris.Wrapf(err, "parse staff file %s", path)
	}
	if len(people) == 0 {
		return nil, eris.Errorf("staff file %s lists no people", path)
	}
	return people, nil
}
