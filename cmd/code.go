package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matemagica/matemagica/internal/export"
	"github.com/matemagica/matemagica/internal/profile"
)

var codeCmd = &cobra.Command{
	Use:   "code",
	Short: "Share progress as a compact transfer code",
}

var codePrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the active profile's transfer code",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ac, err := profile.Load(cmd.Context(), st)
		if err != nil {
			return err
		}

		doc := export.Build(ac.Progress, appVersion(), time.Now())
		code, err := export.EncodeTransferCode(export.ReportFrom(doc))
		if err != nil {
			return err
		}
		fmt.Println(code)
		return nil
	},
}

var codeImportCmd = &cobra.Command{
	Use:   "import <code-or-file>",
	Short: "Import a learner's transfer code into the teacher inbox",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code := args[0]
		if raw, err := os.ReadFile(code); err == nil {
			code = string(raw)
		}

		rep, err := export.DecodeTransferCode(code)
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		doc := rep.Document()
		raw, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		err = st.SaveTeacherImport(cmd.Context(), doc.ProfileID, doc.School.Name, doc.Student.ClassGroup, raw)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %s (%s / %s).\n", doc.Student.FirstName, doc.School.Name, doc.Student.ClassGroup)
		return nil
	},
}

func init() {
	codeCmd.AddCommand(codePrintCmd)
	codeCmd.AddCommand(codeImportCmd)
}
