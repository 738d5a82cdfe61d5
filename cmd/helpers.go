package cmd

import (
	"errors"
	"time"

	"github.com/brafe/qc/internal/bend"
	"github.com/brafe/qc/internal/config"
	"github.com/brafe/qc/internal/db"
	"github.com/brafe/qc/internal/dimension"
	"github.com/brafe/qc/internal/loi"
	"github.com/brafe/qc/internal/output"
	"github.com/brafe/qc/internal/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// errorCode maps an error to its --json error code
func errorCode(err error) string {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return output.ErrCodeNotFound
	case errors.Is(err, bend.ErrBadFormat):
		return output.ErrCodeParseError
	case errors.Is(err, dimension.ErrInvalidInput),
		errors.Is(err, bend.ErrInvalidInput),
		errors.Is(err, loi.ErrInvalidInput),
		errors.Is(err, config.ErrUnknownKey),
		errors.Is(err, config.ErrInvalidValue),
		errors.Is(err, db.ErrEmptyNote),
		errors.Is(err, errInvalidInput):
		return output.ErrCodeInvalidInput
	default:
		return output.ErrCodeDatabaseError
	}
}

// errInvalidInput marks missing, malformed or conflicting command-line input
var errInvalidInput = errors.New("invalid input")

// fail reports err in the command's output mode and returns it for cobra
func fail(cmd *cobra.Command, err error) error {
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		output.JSONError(errorCode(err), err.Error())
	} else {
		output.Error("%v", err)
	}
	logger.Debug("command failed", zap.String("command", cmd.CommandPath()), zap.Error(err))
	return err
}

func loadConfig() (*config.Config, error) {
	return config.Load(getBaseDir())
}

// saveReport writes r to the configured report directory
func saveReport(cfg *config.Config, r *report.Report) (string, error) {
	path, err := r.Save(cfg.ResolveReportDir(getBaseDir()), cfg.ReportPrefix, time.Now())
	if err != nil {
		return "", err
	}
	logger.Info("report written", zap.String("path", path), zap.String("report", r.Name))
	return path, nil
}

// addRecordFlags registers the flags shared by record-producing commands
func addRecordFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output result as JSON")
	cmd.Flags().Bool("no-save", false, "Do not store the result in .qc/records.db")
	cmd.Flags().Bool("report", false, "Write an Excel report to the report directory")
	cmd.Flags().String("part", "", "Part identifier recorded with the result")
}

type recordFlags struct {
	json   bool
	noSave bool
	report bool
	part   string
}

func readRecordFlags(cmd *cobra.Command) recordFlags {
	var f recordFlags
	f.json, _ = cmd.Flags().GetBool("json")
	f.noSave, _ = cmd.Flags().GetBool("no-save")
	f.report, _ = cmd.Flags().GetBool("report")
	f.part, _ = cmd.Flags().GetString("part")
	return f
}
