package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/matemagica/matemagica/internal/export"
	"github.com/matemagica/matemagica/internal/report"
	"github.com/matemagica/matemagica/internal/store"
)

var teacherCmd = &cobra.Command{
	Use:   "teacher",
	Short: "Import student exports and build class reports",
}

var teacherImportCmd = &cobra.Command{
	Use:   "import <file.json>...",
	Short: "Import student export files",
	Long:  "Validates each file against the export schema. Bad files are skipped with a reason; good ones still land.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		batch := make([]report.NamedDocument, 0, len(args))
		for _, path := range args {
			raw, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			batch = append(batch, report.NamedDocument{Name: filepath.Base(path), Raw: raw})
		}

		corpus := report.NewCorpus()
		accepted, rejected := corpus.Ingest(batch)

		for _, cls := range corpus.Classes() {
			for _, doc := range corpus.Class(cls[0], cls[1]) {
				raw, err := json.Marshal(doc)
				if err != nil {
					return fmt.Errorf("encode %s: %w", doc.ProfileID, err)
				}
				err = st.SaveTeacherImport(cmd.Context(), doc.ProfileID, doc.School.Name, doc.Student.ClassGroup, raw)
				if err != nil {
					return err
				}
			}
		}

		fmt.Printf("Imported %d of %d file(s).\n", accepted, len(batch))
		for _, rej := range rejected {
			fmt.Printf("  skipped %s: %v\n", rej.Name, rej.Err)
		}
		return nil
	},
}

var teacherClassesCmd = &cobra.Command{
	Use:   "classes",
	Short: "List imported school/class groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		groups, err := st.ListClassGroups(cmd.Context())
		if err != nil {
			return err
		}
		if len(groups) == 0 {
			fmt.Println("No imports yet. Use 'matemagica teacher import' or 'matemagica code import'.")
			return nil
		}
		for _, g := range groups {
			fmt.Printf("%s / %s — %d student(s)\n", g.School, g.ClassGroup, g.Students)
		}
		return nil
	},
}

var teacherReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the class action-plan report",
	RunE:  teacherOutput("report"),
}

var teacherTableCmd = &cobra.Command{
	Use:   "table",
	Short: "Show the class overview table",
	RunE:  teacherOutput("table"),
}

var teacherCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Write the per-student CSV",
	RunE:  teacherOutput("csv"),
}

var teacherXLSXCmd = &cobra.Command{
	Use:   "xlsx",
	Short: "Write the per-student spreadsheet",
	RunE:  teacherOutput("xlsx"),
}

// teacherOutput builds one runner per output format; they share the class
// selection and rollup plumbing.
func teacherOutput(format string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		school, classGroup, err := resolveClass(cmd, st)
		if err != nil {
			return err
		}

		docs, err := loadClassDocs(cmd, st, school, classGroup)
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			return fmt.Errorf("no imports for %s / %s", school, classGroup)
		}

		now := time.Now()
		rows, sum := report.Rollup(school, classGroup, docs, now)

		out, _ := cmd.Flags().GetString("out")
		switch format {
		case "table":
			fmt.Println(report.RenderTable(school, classGroup, rows))
			return nil
		case "report":
			text := report.TextReport(sum, now)
			if out == "" {
				fmt.Println(text)
				return nil
			}
			return os.WriteFile(out, []byte(text), 0o644)
		case "csv":
			if out == "" {
				return report.WriteCSV(cmd.OutOrStdout(), school, classGroup, rows)
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			return report.WriteCSV(f, school, classGroup, rows)
		case "xlsx":
			if out == "" {
				return fmt.Errorf("xlsx needs --out")
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			return report.WriteXLSX(f, school, classGroup, rows)
		}
		return fmt.Errorf("unknown format %q", format)
	}
}

// resolveClass picks the school/class pair from flags, config, or the only
// imported class when there is exactly one.
func resolveClass(cmd *cobra.Command, st *store.Store) (string, string, error) {
	school, _ := cmd.Flags().GetString("school")
	classGroup, _ := cmd.Flags().GetString("class")
	if school != "" && classGroup != "" {
		return school, classGroup, nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return "", "", err
	}
	if school == "" {
		school = cfg.School
	}
	if classGroup == "" {
		classGroup = cfg.ClassGroup
	}
	if school != "" && classGroup != "" {
		return school, classGroup, nil
	}

	groups, err := st.ListClassGroups(cmd.Context())
	if err != nil {
		return "", "", err
	}
	if len(groups) == 1 {
		return groups[0].School, groups[0].ClassGroup, nil
	}
	return "", "", fmt.Errorf("pick a class with --school and --class (see 'matemagica teacher classes')")
}

// loadClassDocs reads the stored imports for a class. Documents were
// validated on the way in, so a decode failure here is a real error.
func loadClassDocs(cmd *cobra.Command, st *store.Store, school, classGroup string) ([]*export.Document, error) {
	raws, err := st.ListTeacherImports(cmd.Context(), school, classGroup)
	if err != nil {
		return nil, err
	}
	docs := make([]*export.Document, 0, len(raws))
	for _, raw := range raws {
		var doc export.Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode stored import: %w", err)
		}
		docs = append(docs, &doc)
	}
	return docs, nil
}

func init() {
	for _, c := range []*cobra.Command{teacherReportCmd, teacherTableCmd, teacherCSVCmd, teacherXLSXCmd} {
		c.Flags().String("school", "", "School name")
		c.Flags().String("class", "", "Class group, like 6B")
		c.Flags().StringP("out", "o", "", "Write to a file instead of stdout")
	}

	teacherCmd.AddCommand(teacherImportCmd)
	teacherCmd.AddCommand(teacherClassesCmd)
	teacherCmd.AddCommand(teacherReportCmd)
	teacherCmd.AddCommand(teacherTableCmd)
	teacherCmd.AddCommand(teacherCSVCmd)
	teacherCmd.AddCommand(teacherXLSXCmd)
}
